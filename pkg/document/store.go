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

package document

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 Store persists a Document to the single file it was loaded from
type Store struct {
	path string
}

// 🏭 NewStore creates a store for the given file path
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Path returns the file path backing the store
func (s *Store) Path() string {
	return s.path
}

// 📖 Load reads the whole file into memory
func (s *Store) Load(ctx context.Context) (*Document, error) {
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Msg("loading gcode file")

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Errorf("reading gcode file %q: %w", s.path, err)
	}

	doc := Parse(data)
	zerolog.Ctx(ctx).Debug().Int("lines", doc.Len()).Msg("loaded gcode file")
	return doc, nil
}

// 💾 Save overwrites the file with the serialized document
func (s *Store) Save(ctx context.Context, doc *Document) error {
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Int("lines", doc.Len()).Msg("saving gcode file")

	if err := s.writeAtomic(doc.Bytes()); err != nil {
		return errors.Errorf("writing gcode file %q: %w", s.path, err)
	}
	return nil
}

// 🧹 Wipe replaces the file content with a single placeholder comment line
func (s *Store) Wipe(ctx context.Context, placeholder string) error {
	zerolog.Ctx(ctx).Warn().Str("path", s.path).Str("placeholder", placeholder).Msg("wiping gcode file")

	if err := s.writeAtomic([]byte(placeholder + lf)); err != nil {
		return errors.Errorf("wiping gcode file %q: %w", s.path, err)
	}
	return nil
}

func (s *Store) writeAtomic(content []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
