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

package prompt

import (
	"bufio"
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// ErrorTitle heads every persistent error display
const ErrorTitle = "Uploading blank stl to cancel slice due to error:"

var _ Notifier = (*Console)(nil)

// 💬 Console notifies on the terminal. Errors wait for Enter when Dismiss is set.
type Console struct {
	Out     io.Writer
	In      io.Reader
	Dismiss bool
}

func (c *Console) Notice(ctx context.Context, msg string) {
	zerolog.Ctx(ctx).Info().Str("notice", msg).Msg("notify")
	pterm.Info.WithPrefix(pterm.Prefix{Text: "ℹ️"}).WithWriter(c.Out).Println(msg)
}

func (c *Console) ShowError(ctx context.Context, err error) {
	zerolog.Ctx(ctx).Error().Err(err).Msg("processing failed")
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(c.Out).Println(ErrorTitle)
	pterm.Error.WithWriter(c.Out).Println(err.Error())

	if !c.Dismiss || c.In == nil {
		return
	}

	pterm.Info.WithWriter(c.Out).Println("Press Enter to dismiss")
	_, _ = bufio.NewReader(c.In).ReadString('\n')
}
