package mocks

// MockFileFinder はFileFinderのモック実装です
type MockFileFinder struct {
	FoundFile string
	Error     error
	CallCount int
}

// Find はモック実装です
func (m *MockFileFinder) Find() (string, error) {
	m.CallCount++
	if m.Error != nil {
		return "", m.Error
	}
	return m.FoundFile, nil
}
