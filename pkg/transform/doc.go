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

/*
Package transform holds the G-code rewrites applied by the post-processor.

Every transform works on a shared document.Document in place. Transforms never delete or
reorder lines: they comment a line out (keeping its original text) or insert new lines.
Each one reports what it did, or why it did nothing, as status messages.

	runner := transform.NewRunner(reporter,
		transform.Step{Transform: transform.NewDuplicateTool(cfg.Tools), Enabled: true},
		transform.Step{Transform: transform.NewSpiral(), Enabled: false},
	)
	err := runner.Run(ctx, doc, collector)
*/
package transform
