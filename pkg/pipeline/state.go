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

package pipeline

// 🚦 State is a step of one post-processing run
type State int

const (
	StateInit State = iota
	StateConfigPrompt
	StateLoaded
	StateHeatSoakPass
	StateBrimPass
	StateDuplicateToolPass
	StateSpiralPass
	StateToolchangeWaitPass
	StatePersisted
	StateTimeEstimation
	StateReloaded
	StateFinalWrite
	StateDone
	StateAborted
	StateFailed
	StateSkipped
)

var stateNames = map[State]string{
	StateInit:               "init",
	StateConfigPrompt:       "config_prompt",
	StateLoaded:             "loaded",
	StateHeatSoakPass:       "heat_soak_pass",
	StateBrimPass:           "brim_pass",
	StateDuplicateToolPass:  "duplicate_tool_pass",
	StateSpiralPass:         "spiral_pass",
	StateToolchangeWaitPass: "toolchange_wait_pass",
	StatePersisted:          "persisted",
	StateTimeEstimation:     "time_estimation",
	StateReloaded:           "reloaded",
	StateFinalWrite:         "final_write",
	StateDone:               "done",
	StateAborted:            "aborted",
	StateFailed:             "failed",
	StateSkipped:            "skipped",
}

// String returns a string representation of State
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no transition leaves s
func (s State) Terminal() bool {
	return s == StateDone || s == StateAborted || s == StateFailed || s == StateSkipped
}

// 🏁 Outcome is how a run ended
type Outcome int

const (
	OutcomeDone    Outcome = iota // every step completed
	OutcomeAborted                // the operator closed a required prompt, file wiped
	OutcomeFailed                 // a fatal error occurred, file wiped
	OutcomeSkipped                // the file was already post-processed, left untouched
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeAborted:
		return "aborted"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}
