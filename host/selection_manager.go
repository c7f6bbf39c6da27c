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

package host

import (
	"github.com/ohartman/slicerviz/identity"
)

// SelectionManager tracks the authoritative set of selected row identities
// for one visual instance, forwarding each change to the host.
type SelectionManager struct {
	host     Services
	selected []identity.Identity
}

// NewSelectionManager returns a SelectionManager notifying the provided
// host services.
func NewSelectionManager(host Services) *SelectionManager {
	return &SelectionManager{host: host}
}

// Clear empties the selection and notifies the host.
func (sm *SelectionManager) Clear() {
	sm.selected = nil
	sm.notify()
}

// Select adds the provided identity to the selection, if it is not already
// present, and notifies the host.
func (sm *SelectionManager) Select(id identity.Identity) {
	if id == nil {
		return
	}
	for _, sel := range sm.selected {
		if sel.Equals(id) {
			return
		}
	}
	sm.selected = append(sm.selected, id)
	sm.notify()
}

// HasSelection reports whether any identity is selected.
func (sm *SelectionManager) HasSelection() bool {
	return len(sm.selected) > 0
}

// SelectionIdentities returns the selected identities in selection order.
func (sm *SelectionManager) SelectionIdentities() []identity.Identity {
	ret := make([]identity.Identity, len(sm.selected))
	copy(ret, sm.selected)
	return ret
}

func (sm *SelectionManager) notify() {
	if sm.host == nil {
		return
	}
	sm.host.OnSelect(Selection{Identities: sm.SelectionIdentities()})
}
