package mocks

import "github.com/shiroemons/go-lrx/pkg/lrx"

// MockDocumentParser はDocumentParserのモック実装です
type MockDocumentParser struct {
	Document *lrx.Document
	Error    error
	Inputs   []string
}

// Parse はモック実装です
func (m *MockDocumentParser) Parse(text string) (*lrx.Document, error) {
	m.Inputs = append(m.Inputs, text)
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Document == nil {
		return &lrx.Document{}, nil
	}
	return m.Document, nil
}
