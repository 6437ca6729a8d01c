// =================================================================================
//
//			fox-audio - https://www.foxhollow.cc/projects/fox-audio/
//
//		 Fox Audio is a simple CLI utility for recording and playback of
//	  multitrack audio straight to disk by utilizing the JACK audio server
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package cmd

import (
	"log/slog"
	"os"

	"fox-recorder/app"
	"fox-recorder/model"

	"github.com/spf13/cobra"
)

var (
	// arguments
	args model.CommandLineArgs

	rootCmd = &cobra.Command{
		Use:   "fox",
		Short: "Monitor the inputs of a recording session",

		SilenceUsage: true,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(&args)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&args.ConfigFile, "config", "c", "", "Config file to load instead of fox.yml")

	rootCmd.Flags().StringVarP(&args.ProfileName, "profile", "p", "", "Name or path of the profile to load, REQUIRED")
	rootCmd.Flags().StringVarP(&args.OutputType, "output", "o", "", "Front end to use: tui or json")
	rootCmd.Flags().StringVar(&args.Listen, "listen", "", "<host>:<port> -- stream json output to websocket clients")
	rootCmd.Flags().StringVar(&args.LogFile, "log-file", "", "Also write the log to this file")

	// simulation
	rootCmd.Flags().BoolVar(&args.Simulate, "simulate", false, "Simulate the audio engine instead of connecting to JACK")
	rootCmd.Flags().BoolVar(&args.SimulateFreezeMeters, "simulate-freeze-meters", false, "Freeze the meters (don't randomly set level)")
	rootCmd.Flags().IntVar(&args.SimulateChannelCount, "simulate-channel-count", 0, "Number of audio ports to simulate")
	rootCmd.Flags().IntVar(&args.SimulateMidiCount, "simulate-midi-count", -1, "Number of midi ports to simulate")
	rootCmd.Flags().StringVar(&args.SimulateSource, "simulate-source", "", "Wav file whose channels feed the simulated ports")
}

// configureTextLogger is used by commands that don't start a UI.
func configureTextLogger(config *model.Config) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(config.LogLevel),
	}))
	slog.SetDefault(logger)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
