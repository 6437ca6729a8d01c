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
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fox-recorder/library"
	"fox-recorder/model"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("code") == "good" {
			w.Write([]byte(`{"access_token":"granted"}`))
			return
		}
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"first code works", "good\n", "granted", nil},
		{"retry after rejected code", "bad\ngood\n", "granted", nil},
		{"input ends", "bad\n", "", library.ErrNotAuthorized},
		{"too many attempts", "bad\nbad\nbad\ngood\n", "", library.ErrNotAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := library.NewClient(&model.LibraryOptions{BaseURL: srv.URL, ClientID: "id"}, "")
			var out bytes.Buffer

			token, err := login(context.Background(), client, strings.NewReader(tt.input), &out)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if token != tt.want {
				t.Errorf("got token %q, want %q", token, tt.want)
			}
			if !strings.Contains(out.String(), client.AuthorizeURL()) {
				t.Error("expected the authorization page to be shown")
			}
		})
	}
}

func TestPrintSounds(t *testing.T) {
	var out bytes.Buffer

	printSounds(&out, &library.SearchResult{
		Count: 5,
		Results: []library.Sound{
			{ID: 12, Name: "snare roll.wav", Duration: 61.5, Filesize: 2048, License: "CC0"},
		},
	})

	text := out.String()
	for _, want := range []string{"snare roll.wav", "00:01:01.500", "2.00 KiB", "CC0", "1 of 5 results"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in\n%s", want, text)
		}
	}
}
