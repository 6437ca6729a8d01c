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
package app

import (
	"errors"
	"fmt"

	"fox-recorder/model"
	"fox-recorder/util"
)

var ErrNoProfile = errors.New("profile not specified but is REQUIRED. See fox --help for more info")

// Run loads the config and profile named by args and records until the
// recorder is shut down.
func Run(args *model.CommandLineArgs) error {
	if args.ProfileName == "" {
		return ErrNoProfile
	}

	config, err := util.ReadConfig(args)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	profile, err := util.ReadProfile(config, args.ProfileName)
	if err != nil {
		return err
	}

	return runEngine(config, profile, args.LogFile)
}
