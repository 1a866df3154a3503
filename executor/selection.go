package executor

import "github.com/robot-dreams/fwtable"

// selection restricts Records from the input to those that satisfy the
// specified Predicate.
type selection struct {
	iter fwtable.Iterator
	p    fwtable.Predicate
}

var _ fwtable.Iterator = (*selection)(nil)

func NewSelection(iter fwtable.Iterator, p fwtable.Predicate) *selection {
	return &selection{
		iter: iter,
		p:    p,
	}
}

func (s *selection) Layout() *fwtable.Layout {
	return s.iter.Layout()
}

func (s *selection) Next() (fwtable.Record, error) {
	for {
		record, err := s.iter.Next()
		if err != nil {
			return nil, err
		}
		if s.p(record) {
			return record, nil
		}
	}
}

func (s *selection) Close() error {
	return s.iter.Close()
}
