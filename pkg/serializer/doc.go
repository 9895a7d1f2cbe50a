// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serializer encodes and publishes snapshot documents.
//
// # Supported Formats
//
// JSON:
//   - Default; two-space indent, trailing newline
//   - Standard encoding/json package
//
// YAML:
//   - Same structure, human-readable
//   - gopkg.in/yaml.v3 package
//
// # Destinations
//
// AtomicFileWriter publishes to a file. The document is written to a temp
// file beside the target, synced, made world readable (0644) and renamed
// over the target. A reader polling the path sees the old document or the
// new one, never a torn write. On failure the temp file is removed and the
// old document stays in place.
//
// Writer streams to any io.Writer; NewStdoutWriter targets stdout.
//
// # Usage
//
//	s := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "/var/www/cortana/stats.json")
//	if err := s.Serialize(ctx, snap); err != nil {
//	    return err
//	}
//
// An output path of "-" selects stdout.
package serializer
