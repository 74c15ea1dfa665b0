// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package storage

import "github.com/dgraph-io/badger/v4"

// copyData overwrites the payload stored under dst with the one under src.
func (s *Store) copyData(src, dst string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(dataKey(src))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return txn.Set(dataKey(dst), val)
	})
}
