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

package hostsim

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/ohartman/slicerviz/dataview"
)

// DatasetLoader describes types capable of loading datasets by name.
type DatasetLoader interface {
	// Load loads the named dataset, returning an error if it cannot be
	// found or read.
	Load(name string) (*Dataset, error)
}

// DatasetStore caches the most recently used datasets in front of a
// loader.
type DatasetStore struct {
	mu sync.Mutex
	// An LRU cache holding the most recently-accessed datasets.
	lru *simplelru.LRU
	// A dataset loader used to fetch uncached datasets.
	loader DatasetLoader
}

// NewDatasetStore returns a DatasetStore with the specified cache
// capacity, loading uncached datasets through loader.
func NewDatasetStore(cap int, loader DatasetLoader) (*DatasetStore, error) {
	lru, err := simplelru.NewLRU(cap /*no onEvict policy*/, nil)
	if err != nil {
		return nil, err
	}
	return &DatasetStore{
		lru:    lru,
		loader: loader,
	}, nil
}

// Fetch returns the named dataset from the LRU if it's present there.  If
// it isn't already in the LRU, it is loaded and added to the LRU before
// being returned.
func (s *DatasetStore) Fetch(name string) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.lru.Get(name); ok {
		ds, ok := cached.(*Dataset)
		if !ok {
			return nil, fmt.Errorf("cached entry for '%s' is not a dataset", name)
		}
		return ds, nil
	}
	ds, err := s.loader.Load(name)
	if err != nil {
		return nil, err
	}
	s.lru.Add(name, ds)
	return ds, nil
}

// DirLoader loads datasets from CSV files under a root directory: dataset
// 'sales' comes from <root>/sales.csv.  Each record is a category cell and
// a numeric measure; a leading record whose measure does not parse is
// treated as a header.  Numeric category cells stay numeric so that
// date heuristics downstream can interpret years and epoch values.
type DirLoader struct {
	Root string
}

// Load reads the named dataset from its CSV file.
func (l DirLoader) Load(name string) (*Dataset, error) {
	path := filepath.Join(l.Root, name+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset '%s': %w", name, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading dataset '%s': %w", name, err)
	}
	ds := &Dataset{Name: name, Column: name + ".Category"}
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("dataset '%s' record %d has %d fields, want at least 2", name, i, len(record))
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			if i == 0 {
				// Header row.
				continue
			}
			return nil, fmt.Errorf("dataset '%s' record %d: non-numeric measure '%s'", name, i, record[1])
		}
		ds.Rows = append(ds.Rows, Row{
			Category: categoryCell(record[0]),
			Value:    value,
		})
	}
	return ds, nil
}

func categoryCell(field string) *dataview.V {
	if n, err := strconv.ParseFloat(field, 64); err == nil {
		return dataview.DoubleValue(n)
	}
	return dataview.StringValue(field)
}
