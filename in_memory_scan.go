package fwtable

import (
	"io"
)

type inMemoryScan struct {
	l       *Layout
	records []Record
}

var _ Iterator = (*inMemoryScan)(nil)

func NewInMemoryScan(l *Layout, records []Record) *inMemoryScan {
	return &inMemoryScan{
		l:       l,
		records: records,
	}
}

func (m *inMemoryScan) Layout() *Layout {
	return m.l
}

func (m *inMemoryScan) Next() (Record, error) {
	if len(m.records) == 0 {
		return nil, io.EOF
	}
	r := m.records[0]
	m.records = m.records[1:]
	return r, nil
}

func (m *inMemoryScan) Close() error {
	m.records = nil
	return nil
}
