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
	"fmt"
	"math"
	"path/filepath"
	"time"

	"fox-recorder/display"
	"fox-recorder/model"
	"fox-recorder/reaper"
	"fox-recorder/util"
)

// startStatistics keeps the disk meter in the status area current.
func startStatistics(ui display.UI, config *model.Config) {
	directory := "."
	if config.Library != nil && config.Library.DownloadDirectory != "" {
		directory = config.Library.DownloadDirectory
	}

	processOnInterval("disk space stats", time.Second, func() {
		diskInfo, err := util.GetDiskSpace(existingParent(directory))
		if err != nil {
			util.TraceLog("disk space unavailable: " + err.Error())
			return
		}

		percent := int(math.Round(diskInfo.UsedPct * 100.0))
		ui.Queue(func() { ui.SetDiskUsage(percent) })

		util.TraceLog(fmt.Sprintf("Disk total: %d B, Disk Used: %d B, Disk free: %d B, used %0.2f%%", diskInfo.Size, diskInfo.Used, diskInfo.Free, diskInfo.UsedPct*100.0))
	})
}

// existingParent walks up from path until it finds a directory that exists,
// so usage can be shown before the library was created.
func existingParent(path string) string {
	resolved, err := util.ResolveHomeDirPath(path)
	if err != nil {
		return "."
	}

	for !util.DirectoryExists(resolved) {
		parent := filepath.Dir(resolved)
		if parent == resolved {
			return "."
		}
		resolved = parent
	}

	return resolved
}

func processOnInterval(name string, interval time.Duration, process func()) {
	reaper.Register(name)

	go func() {
		defer reaper.Done(name)

		process()

		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-reaper.Context().Done():
				return
			case <-t.C:
				process()
			}
		}
	}()
}
