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
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())
}

type scriptedAnswer struct {
	text        string
	interrupted bool
}

func scriptedTerminal(answers []scriptedAnswer, confirm bool, interrupted bool) (*Terminal, *int) {
	calls := 0
	return &Terminal{
		input: func(label, def string) (string, bool, error) {
			a := answers[calls]
			calls++
			return a.text, a.interrupted, nil
		},
		confirm: func(msg string) (bool, bool, error) {
			return confirm, interrupted, nil
		},
	}, &calls
}

func TestParseNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "integer", input: "5", want: 5},
		{name: "fraction", input: " 2.5 ", want: 2.5},
		{name: "zero_means_no_soak", input: "0", want: 0},
		{name: "blank_is_zero", input: "", want: 0},
		{name: "negative", input: "-1", wantErr: true},
		{name: "garbage", input: "five", wantErr: true},
		{name: "nan", input: "NaN", wantErr: true},
		{name: "inf", input: "inf", wantErr: true},
		{name: "signed_inf", input: "+Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNonNegative(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "5", FormatNumber(5))
	assert.Equal(t, "2.5", FormatNumber(2.5))
	assert.Equal(t, "0", FormatNumber(0))
}

func TestTerminalRequestNumericParameter(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	t.Run("reprompts_until_valid", func(t *testing.T) {
		term, calls := scriptedTerminal([]scriptedAnswer{{text: "-3"}, {text: "abc"}, {text: "7"}}, false, false)
		v, err := term.RequestNumericParameter(testContext(t), "Soak time", 5)
		require.NoError(t, err)
		assert.Equal(t, 7.0, v)
		assert.Equal(t, 3, *calls)
	})

	t.Run("interrupt_aborts", func(t *testing.T) {
		term, _ := scriptedTerminal([]scriptedAnswer{{interrupted: true}}, false, false)
		_, err := term.RequestNumericParameter(testContext(t), "Soak time", 5)
		assert.True(t, errors.Is(err, ErrAborted))
	})

	t.Run("gives_up_after_attempts", func(t *testing.T) {
		answers := make([]scriptedAnswer, maxAttempts)
		for i := range answers {
			answers[i] = scriptedAnswer{text: "-1"}
		}
		term, calls := scriptedTerminal(answers, false, false)
		_, err := term.RequestNumericParameter(testContext(t), "Soak time", 5)
		assert.True(t, errors.Is(err, ErrAborted))
		assert.Equal(t, maxAttempts, *calls)
	})
}

func TestTerminalRequestAcceptOrAbort(t *testing.T) {
	tests := []struct {
		name        string
		confirm     bool
		interrupted bool
		wantAbort   bool
	}{
		{name: "accepted", confirm: true},
		{name: "rejected", confirm: false, wantAbort: true},
		{name: "closed", confirm: true, interrupted: true, wantAbort: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := scriptedTerminal(nil, tt.confirm, tt.interrupted)
			err := term.RequestAcceptOrAbort(testContext(t), "Large brim")
			if tt.wantAbort {
				assert.True(t, errors.Is(err, ErrAborted))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStatic(t *testing.T) {
	ctx := testContext(t)

	s := &Static{Numeric: map[string]float64{"Soak time": 12}}
	v, err := s.RequestNumericParameter(ctx, "Soak time", 5)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)

	v, err = s.RequestNumericParameter(ctx, "Other", 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v, "missing preset answers with the default")

	assert.True(t, errors.Is(s.RequestAcceptOrAbort(ctx, "Large brim"), ErrAborted))

	s.Accept = true
	assert.NoError(t, s.RequestAcceptOrAbort(ctx, "Large brim"))

	_, err = (&Static{Numeric: map[string]float64{"Soak time": -2}}).RequestNumericParameter(ctx, "Soak time", 5)
	assert.Error(t, err)

	_, err = (&Static{Numeric: map[string]float64{"Soak time": math.NaN()}}).RequestNumericParameter(ctx, "Soak time", 5)
	assert.Error(t, err)

	_, err = (&Static{}).RequestNumericParameter(ctx, "Soak time", math.Inf(1))
	assert.Error(t, err, "an infinite default is rejected too")
}

func TestConsoleShowErrorWaitsForEnter(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("\n")

	c := &Console{Out: &out, In: in, Dismiss: true}
	c.ShowError(testContext(t), errors.New("estimator crashed"))

	assert.Contains(t, out.String(), "estimator crashed")
	assert.Equal(t, 0, in.Len(), "the dismiss line is consumed")
}

func TestConsoleNotice(t *testing.T) {
	var out bytes.Buffer
	c := &Console{Out: &out}
	c.Notice(testContext(t), "file cleared")
	assert.Contains(t, out.String(), "file cleared")
}
