// Copyright 2025 walteh LLC
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

// Package pipeline runs one post-processing pass over a G-code file.
//
// The run is a state machine: prompt for configuration, load, apply the transforms in a
// fixed order, persist, run the time estimator, reload, append the status block and write
// the final file. Aborts and failures wipe the file so a half transformed print can never
// be started.
package pipeline
