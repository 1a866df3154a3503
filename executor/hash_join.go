package executor

import (
	"io"

	"github.com/robot-dreams/fwtable"
)

// hashJoin performs an equijoin on two inputs, where the whole of r fits into
// an in-memory hash map.  Records of s are streamed; joined Records come out
// in s order, and for each s Record in r order.  Missing join values never
// match.
type hashJoin struct {
	r fwtable.Iterator
	s fwtable.Iterator

	// Layout of the joined Records.  The columns of r appear first.
	l *fwtable.Layout

	sJoinPosition int
	hashTable     map[interface{}][]fwtable.Record

	// Joined Records for the current s Record that have not been returned.
	pending []fwtable.Record
	done    bool
}

var _ fwtable.Iterator = (*hashJoin)(nil)

// NewHashJoin reads all of r before returning.
func NewHashJoin(
	r, s fwtable.Iterator,
	rJoinColumn, sJoinColumn string,
) (*hashJoin, error) {
	l, err := fwtable.JoinedLayout(r.Layout(), s.Layout(), rJoinColumn, sJoinColumn)
	if err != nil {
		return nil, err
	}
	rJoinPosition, _, err := r.Layout().ColumnPositionAndType(rJoinColumn)
	if err != nil {
		return nil, err
	}
	sJoinPosition, _, err := s.Layout().ColumnPositionAndType(sJoinColumn)
	if err != nil {
		return nil, err
	}
	hashTable := make(map[interface{}][]fwtable.Record)
	for {
		rRecord, err := r.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		v := rRecord[rJoinPosition]
		if fwtable.IsMissing(v) {
			continue
		}
		hashTable[v] = append(hashTable[v], rRecord)
	}
	return &hashJoin{
		r:             r,
		s:             s,
		l:             l,
		sJoinPosition: sJoinPosition,
		hashTable:     hashTable,
	}, nil
}

func (h *hashJoin) Layout() *fwtable.Layout {
	return h.l
}

func (h *hashJoin) Next() (fwtable.Record, error) {
	for len(h.pending) == 0 {
		if h.done {
			return nil, io.EOF
		}
		sRecord, err := h.s.Next()
		if err == io.EOF {
			h.done = true
			return nil, io.EOF
		} else if err != nil {
			return nil, err
		}
		v := sRecord[h.sJoinPosition]
		if fwtable.IsMissing(v) {
			continue
		}
		for _, rRecord := range h.hashTable[v] {
			h.pending = append(h.pending, fwtable.JoinedRecord(rRecord, sRecord))
		}
	}
	record := h.pending[0]
	h.pending = h.pending[1:]
	return record, nil
}

func (h *hashJoin) Close() error {
	h.done = true
	h.pending = nil
	h.hashTable = nil
	for _, iter := range []fwtable.Iterator{h.r, h.s} {
		err := iter.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
