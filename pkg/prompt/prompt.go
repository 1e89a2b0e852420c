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

// Package prompt asks the operator for decisions the post-processor cannot make on its own.
//
// A Confirmer is a capability with two blocking requests. Any front end can implement it;
// this package ships an interactive terminal provider and a static provider fed from flags.
package prompt

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// ErrAborted is returned when the operator declines or closes a required prompt
var ErrAborted = errors.Base("prompt aborted")

// 🤝 Confirmer requests values and decisions from an operator
type Confirmer interface {
	// 🔢 RequestNumericParameter asks for a non-negative number, prefilled with def.
	// Zero is a valid answer. Returns ErrAborted when the prompt is closed.
	RequestNumericParameter(ctx context.Context, label string, def float64) (float64, error)

	// ✋ RequestAcceptOrAbort presents msg and returns nil when accepted, ErrAborted otherwise
	RequestAcceptOrAbort(ctx context.Context, msg string) error
}

// 📣 Notifier surfaces the outcome of a run to the operator
type Notifier interface {
	// Notice shows a transient message
	Notice(ctx context.Context, msg string)

	// ShowError shows err and does not return until the operator dismissed it
	ShowError(ctx context.Context, err error)
}
