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

package timescale

import (
	"encoding/json"
	"time"

	"github.com/ohartman/slicerviz/dataview"
	"github.com/ohartman/slicerviz/expr"
	"github.com/ohartman/slicerviz/host"
)

const (
	generalObject  = "general"
	filterProperty = "filter"
)

// Range is a closed interval of time selected on the widget.
type Range struct {
	Start, End time.Time
}

// Widget is the rendering side of the time scale, fed by the Controller.
type Widget interface {
	// SetData replaces the widget's items.
	SetData(items []TimeItem)
	// SelectedRange returns the widget's current brush, if any.
	SelectedRange() (Range, bool)
	// SetSelectedRange moves the widget's brush.
	SetSelectedRange(r Range)
}

// Controller mediates between the host and a time scale widget.  Updates
// flow host to widget; brushed ranges flow widget to host as a persisted
// between-filter on the time column.
type Controller struct {
	host   host.Services
	widget Widget

	data []TimeItem
	// The time column's identity field from the most recent update, the
	// column the between-filter binds to.
	timeColumn expr.Expr
}

// NewController returns a Controller for the provided host services and
// widget.
func NewController(h host.Services, w Widget) *Controller {
	return &Controller{host: h, widget: w}
}

// Update delivers a fresh DataView snapshot from the host.  The time
// column's identity field is stashed for later filtering; the persisted
// range, if any, is pushed to the widget when it differs from the widget's
// current brush; and data is pushed only when it has actually changed.
func (c *Controller) Update(dv *dataview.DataView) {
	if dv == nil {
		return
	}
	if category := dv.FirstCategory(); category != nil && len(category.IdentityFields) > 0 {
		c.timeColumn = category.IdentityFields[0]
	}
	if r, ok := persistedRange(dv.Metadata.Objects); ok {
		current, has := c.widget.SelectedRange()
		if !has || !current.Start.Equal(r.Start) || !current.End.Equal(r.End) {
			c.widget.SetSelectedRange(r)
		}
	}
	data := ConvertTime(dv)
	if data != nil && hasDataChanged(data, c.data) {
		c.data = data
		c.widget.SetData(data)
	}
}

// Data returns the items most recently pushed to the widget.
func (c *Controller) Data() []TimeItem {
	return c.data
}

// OnRangeSelected accepts a brush change from the widget.  A concrete range
// is persisted as a between-filter on the time column; a nil range, or a
// range with no known time column, removes the persisted filter.  Either
// way the host is poked with an empty selection so dependent visuals
// refresh.
func (c *Controller) OnRangeSelected(r *Range) {
	var filter *expr.SemanticFilter
	if r != nil && c.timeColumn != nil {
		filter = expr.FilterFromCondition(expr.BetweenDates(c.timeColumn, r.Start, r.End))
	}
	if filter != nil {
		c.host.PersistProperties(host.Persist{
			Merge: []host.ObjectInstance{{
				ObjectName: generalObject,
				Properties: map[string]any{filterProperty: filter},
			}},
		})
	} else {
		c.host.PersistProperties(host.Persist{
			Remove: []host.ObjectInstance{{
				ObjectName: generalObject,
				Properties: map[string]any{filterProperty: nil},
			}},
		})
	}
	c.host.OnSelect(host.Selection{})
}

// persistedRange recovers the persisted between-filter's bounds from the
// provided objects.  The filter may come back live or serialized.
func persistedRange(objects dataview.Objects) (Range, bool) {
	v, ok := objects.Value(generalObject, filterProperty)
	if !ok {
		return Range{}, false
	}
	var filter *expr.SemanticFilter
	switch f := v.(type) {
	case *expr.SemanticFilter:
		filter = f
	case string:
		parsed, err := expr.ParseFilter([]byte(f))
		if err != nil {
			return Range{}, false
		}
		filter = parsed
	case []byte:
		parsed, err := expr.ParseFilter(f)
		if err != nil {
			return Range{}, false
		}
		filter = parsed
	case json.RawMessage:
		parsed, err := expr.ParseFilter(f)
		if err != nil {
			return Range{}, false
		}
		filter = parsed
	default:
		return Range{}, false
	}
	between := filter.FirstBetween()
	if between == nil {
		return Range{}, false
	}
	lower, lok := between.Lower.(*expr.DateTimeLit)
	upper, uok := between.Upper.(*expr.DateTimeLit)
	if !lok || !uok {
		return Range{}, false
	}
	return Range{Start: lower.Value, End: upper.Value}, true
}
