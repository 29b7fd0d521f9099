// Copyright 2026 Krambot Authors
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


// Package history provides the chat-history storage abstraction.
//
// MessageRepository decouples the assistant from the storage backend; the
// badger subpackage provides the production implementation and an in-memory
// variant for tests. Repositories must be safe for concurrent use.
//
// Recorder layers the retention policy on top of a repository: turns are
// written synchronously so the next read sees them, and each user's history
// is trimmed to a fixed cap in the background.
package history
