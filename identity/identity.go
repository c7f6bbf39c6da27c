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

// Package identity defines the opaque, equality-comparable tokens the host
// issues to identify source rows.  Consumers should depend only on the
// Identity interface; Scoped is the concrete identity built from a scope
// expression, and is what a simulated host issues.
package identity

import (
	"github.com/ohartman/slicerviz/expr"
)

// Identity uniquely identifies a source row.
type Identity interface {
	// Equals reports whether the receiver and other identify the same row.
	Equals(other Identity) bool
	// Key returns a stable string form of the receiver, equal for equal
	// identities.
	Key() string
}

// Selectable is implemented by identities that can produce a selector
// expression for filter assembly.
type Selectable interface {
	// Selector returns the expression selecting the identified row.
	Selector() expr.Expr
}

// Scoped is an Identity built from a scope expression, typically an equality
// of the source column against the row's value.
type Scoped struct {
	scope expr.Expr
	key   string
}

// FromExpr returns the Scoped identity for the provided scope expression.
func FromExpr(scope expr.Expr) *Scoped {
	return &Scoped{
		scope: scope,
		key:   expr.Key(scope),
	}
}

// Equals reports whether other identifies the same row as the receiver.
func (s *Scoped) Equals(other Identity) bool {
	return other != nil && s.key == other.Key()
}

// Key returns the canonical encoding of the receiver's scope expression.
func (s *Scoped) Key() string {
	return s.key
}

// Selector returns the receiver's scope expression.
func (s *Scoped) Selector() expr.Expr {
	return s.scope
}
