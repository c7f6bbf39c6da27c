/*
	Copyright 2025 the slicerviz authors
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package host defines the fixed service surface a visual consumes from its
// host runtime, and the lifecycle interface the host drives.  The host owns
// the canonical DataView and the persisted object store; visuals only ever
// reach them through these interfaces.
package host

import (
	"github.com/ohartman/slicerviz/dataview"
	"github.com/ohartman/slicerviz/identity"
)

// ObjectInstance is one persisted-object write: a property bag addressed by
// object name.
type ObjectInstance struct {
	ObjectName string
	Properties map[string]any
}

// Persist is a property-persistence payload.  Merge entries are folded into
// the store; Remove entries delete their named properties.
type Persist struct {
	Merge  []ObjectInstance
	Remove []ObjectInstance
}

// Selection carries the identities of the currently selected rows to the
// host.
type Selection struct {
	Identities []identity.Identity
}

// Services is the host capability surface consumed by a visual.
type Services interface {
	// LoadMoreData asks the host to fetch the next data segment.  The host
	// answers, eventually, with a fresh Update carrying the grown DataView.
	LoadMoreData()
	// PersistProperties writes the provided payload into the visual's
	// persisted object store.
	PersistProperties(p Persist)
	// OnSelect notifies the host of the visual's current selection.
	OnSelect(s Selection)
}

// Visual is the lifecycle interface the host drives.  The host serializes
// Update calls; a visual never sees two concurrently.
type Visual interface {
	// Update delivers a fresh DataView snapshot.  A nil DataView means the
	// visual currently has no mapped data.
	Update(dv *dataview.DataView)
}
