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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"fox-recorder/library"
	"fox-recorder/model"
	"fox-recorder/shared"
	"fox-recorder/util"

	"github.com/spf13/cobra"
)

const loginAttempts = 3

var (
	// arguments
	argSearchFilter string
	argSearchSort   string
	argSearchPage   int

	libraryCmd = &cobra.Command{
		Use:   "library",
		Short: "Search and download sounds from the sound library",
	}

	librarySearchCmd = &cobra.Command{
		Use:   "search <query>",
		Short: "Search the library by text",
		Args:  cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			sort, err := library.ParseSortMethod(argSearchSort)
			if err != nil {
				return err
			}

			env, err := loadLibraryEnv()
			if err != nil {
				return err
			}

			result, err := env.client.SearchText(cmd.Context(), strings.Join(cmdArgs, " "), argSearchFilter, sort, argSearchPage)
			if err != nil {
				return err
			}

			printSounds(cmd.OutOrStdout(), result)
			return nil
		},
	}

	librarySimilarCmd = &cobra.Command{
		Use:   "similar <sound id>",
		Short: "List sounds similar to the given one",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			id, err := strconv.Atoi(cmdArgs[0])
			if err != nil {
				return fmt.Errorf("invalid sound id %q", cmdArgs[0])
			}

			env, err := loadLibraryEnv()
			if err != nil {
				return err
			}

			result, err := env.client.SearchSimilar(cmd.Context(), id)
			if err != nil {
				return err
			}

			printSounds(cmd.OutOrStdout(), result)
			return nil
		},
	}

	libraryLoginCmd = &cobra.Command{
		Use:   "login",
		Short: "Authorize downloads with your library account",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadLibraryEnv()
			if err != nil {
				return err
			}

			token, err := login(cmd.Context(), env.client, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			env.settings.LibraryAccessToken = token
			if err := util.SaveSettings(env.config.SettingsFile, env.settings); err != nil {
				return fmt.Errorf("save access token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged in, downloads are enabled")
			return nil
		},
	}

	libraryDownloadCmd = &cobra.Command{
		Use:   "download <sound id>",
		Short: "Download a sound into the local library",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			id, err := strconv.Atoi(cmdArgs[0])
			if err != nil {
				return fmt.Errorf("invalid sound id %q", cmdArgs[0])
			}

			env, err := loadLibraryEnv()
			if err != nil {
				return err
			}

			return download(cmd.Context(), env, id, cmd.OutOrStdout())
		},
	}
)

func init() {
	librarySearchCmd.Flags().StringVarP(&argSearchFilter, "filter", "f", "", "Service side filter, e.g. duration:[0 TO 5]")
	librarySearchCmd.Flags().StringVarP(&argSearchSort, "sort", "s", "", "Result order: duration_desc, created_asc, rating_desc, ...")
	librarySearchCmd.Flags().IntVar(&argSearchPage, "page", 1, "Result page to show")

	libraryCmd.AddCommand(librarySearchCmd, librarySimilarCmd, libraryLoginCmd, libraryDownloadCmd)
	rootCmd.AddCommand(libraryCmd)
}

type libraryEnv struct {
	config   *model.Config
	settings *model.Settings
	client   *library.Client
}

func loadLibraryEnv() (*libraryEnv, error) {
	config, err := util.ReadConfig(&args)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	configureTextLogger(config)

	settings := util.LoadSettings(config.SettingsFile)

	return &libraryEnv{
		config:   config,
		settings: settings,
		client:   library.NewClient(config.Library, settings.LibraryAccessToken),
	}, nil
}

func printSounds(out io.Writer, result *library.SearchResult) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDURATION\tSIZE\tLICENSE")

	for _, sound := range result.Results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", sound.ID, sound.Name, util.FormatDuration(sound.Duration), util.FormatSize(uint64(max(sound.Filesize, 0))), sound.License)
	}
	w.Flush()

	fmt.Fprintf(out, "%d of %d results\n", len(result.Results), result.Count)
}

// login walks the user through the authorization page. A code the service
// rejects asks for a new one.
func login(ctx context.Context, client *library.Client, in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Open this page, log in and paste the code it shows:")
	fmt.Fprintln(out, client.AuthorizeURL())

	scanner := bufio.NewScanner(in)

	for range loginAttempts {
		fmt.Fprint(out, "Code: ")
		if !scanner.Scan() {
			return "", library.ErrNotAuthorized
		}

		token, err := client.ExchangeCode(ctx, scanner.Text())
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, library.ErrNotAuthorized) {
			return "", err
		}

		slog.Warn("Login failed: " + err.Error())
	}

	return "", library.ErrNotAuthorized
}

func download(ctx context.Context, env *libraryEnv, id int, out io.Writer) error {
	directory, err := util.ResolveHomeDirPath(env.config.Library.DownloadDirectory)
	if err != nil {
		return err
	}

	dbFile, err := util.ResolveHomeDirPath(env.config.Library.DatabaseFile)
	if err != nil {
		return err
	}

	db, err := library.OpenDatabase(dbFile)
	if err != nil {
		return err
	}

	sound, err := env.client.Sound(ctx, id)
	if err != nil {
		return err
	}

	downloader := library.NewDownloader(env.client, directory, db, nil)

	finished := make(chan library.DownloadResult, 1)
	downloader.Finished.Connect(func(result library.DownloadResult) { finished <- result })

	stopSignals := shared.CatchSignals(func(os.Signal) {
		slog.Info("Cancelling download")
		downloader.Cancel()
	})
	defer stopSignals()

	if err := downloader.Start(ctx, sound); err != nil {
		if errors.Is(err, library.ErrNotAuthorized) {
			return fmt.Errorf("%w, run 'fox library login' first", err)
		}
		return err
	}

	t := time.NewTicker(500 * time.Millisecond)
	defer t.Stop()

	for {
		select {
		case result := <-finished:
			downloader.Wait()
			if result.Err != nil {
				return result.Err
			}

			fmt.Fprintln(out, "Saved "+result.Path)
			return nil

		case <-t.C:
			received, total := downloader.Progress()
			slog.Info(fmt.Sprintf("Downloading %s: %s of %s", sound.Name, util.FormatSize(uint64(received)), util.FormatSize(uint64(max(total, 0)))))
		}
	}
}
