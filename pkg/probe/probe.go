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

// Package probe checks in the background whether the time-estimation service accepts TCP connections.
package probe

import (
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🌐 Result is the outcome of one reachability check
type Result struct {
	Connected bool
	Message   string
}

// Endpoint is a dialable host and port taken from a service URL
type Endpoint struct {
	Host string
	Port int
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// 🔍 ParseEndpoint extracts host and port from a URL like http://192.168.1.4:7125/path.
// A missing port defaults to 80.
func ParseEndpoint(rawURL string) (Endpoint, error) {
	hostPort := rawURL
	switch {
	case strings.HasPrefix(hostPort, "http://"):
		hostPort = strings.TrimPrefix(hostPort, "http://")
	case strings.HasPrefix(hostPort, "https://"):
		hostPort = strings.TrimPrefix(hostPort, "https://")
	}

	if !strings.Contains(hostPort, ":") {
		host, _, _ := strings.Cut(hostPort, "/")
		return Endpoint{Host: host, Port: 80}, nil
	}

	host, portStr, _ := strings.Cut(hostPort, ":")
	portStr, _, _ = strings.Cut(portStr, "/")

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return Endpoint{}, errors.Errorf("Invalid port in Moonraker URL: %s", rawURL)
	}
	return Endpoint{Host: host, Port: port}, nil
}

// Check dials the endpoint once, bounded by timeout
func Check(ctx context.Context, rawURL string, timeout time.Duration) Result {
	ep, err := ParseEndpoint(rawURL)
	if err != nil {
		return Result{Connected: false, Message: err.Error()}
	}

	dialer := net.Dialer{Timeout: timeout}
	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", ep.String())
	elapsed := time.Since(start)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return Result{Message: "Connection to Moonraker at " + ep.String() + " timed out after " + seconds(timeout) + "s"}
		}
		return Result{Message: "Failed to connect to Moonraker at " + ep.String() + ": " + err.Error()}
	}
	_ = conn.Close()

	return Result{
		Connected: true,
		Message:   "Connected to Moonraker at " + ep.String() + " in " + strconv.FormatFloat(elapsed.Seconds(), 'f', 2, 64) + "s",
	}
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

// ⏳ Pending is the handle of a check running in the background.
// It resolves exactly once.
type Pending struct {
	done chan Result

	mu       sync.Mutex
	resolved bool
	result   Result
}

// 🚀 Start runs Check in a goroutine and returns immediately
func Start(ctx context.Context, rawURL string, timeout time.Duration) *Pending {
	p := &Pending{done: make(chan Result, 1)}

	go func() {
		r := Check(ctx, rawURL, timeout)
		zerolog.Ctx(ctx).Debug().Bool("connected", r.Connected).Str("message", r.Message).Msg("connectivity check finished")
		p.done <- r
	}()

	return p
}

// Resolved wraps an already known result, for callers that skip the check
func Resolved(r Result) *Pending {
	return &Pending{resolved: true, result: r}
}

// ⌛ Await polls every poll interval until the check finished or max elapsed.
// An unfinished check counts as not connected.
func (p *Pending) Await(max, poll time.Duration) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.resolved {
		return p.result
	}

	select {
	case r := <-p.done:
		return p.resolve(r)
	default:
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	deadline := time.NewTimer(max)
	defer deadline.Stop()

	for {
		select {
		case <-ticker.C:
			select {
			case r := <-p.done:
				return p.resolve(r)
			default:
			}
		case <-deadline.C:
			select {
			case r := <-p.done:
				return p.resolve(r)
			default:
			}
			return p.resolve(Result{Message: "Connectivity check timed out after " + seconds(max) + "s"})
		}
	}
}

func (p *Pending) resolve(r Result) Result {
	p.resolved = true
	p.result = r
	return r
}
