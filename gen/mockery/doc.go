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

// Package mockery holds the generated mocks for the confirmation provider, the notifier and
// the estimator. Regenerate them after changing an interface listed in .mockery.yaml.
package mockery

//go:generate sh -c "cd ../.. && go run github.com/vektra/mockery/v2@v2.51.0"
