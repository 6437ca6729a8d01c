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
package util

import (
	"github.com/shirou/gopsutil/v3/disk"
)

type DiskInfo struct {
	Size    uint64
	Used    uint64
	Free    uint64
	UsedPct float64
}

// GetDiskSpace reports usage of the volume holding path.
func GetDiskSpace(path string) (DiskInfo, error) {
	resolved, err := ResolveHomeDirPath(path)
	if err != nil {
		return DiskInfo{}, err
	}

	usage, err := disk.Usage(resolved)
	if err != nil {
		return DiskInfo{}, err
	}

	return DiskInfo{
		Size:    usage.Total,
		Used:    usage.Used,
		Free:    usage.Free,
		UsedPct: usage.UsedPercent / 100.0,
	}, nil
}
