package config

import (
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// MockConfigHook serves values from Values and records bound flags. The
// *Mock functions override the map when set.
type MockConfigHook struct {
	Values map[string]any

	GetStringMock      func(key string) string
	GetBoolMock        func(key string) bool
	GetIntMock         func(key string) int
	BindFlagMock       func(string, *pflag.Flag) error
	GetStringSliceMock func(key string) []string
	GetPathMock        func() string
}

func (m *MockConfigHook) GetString(key string) string {
	if m.GetStringMock != nil {
		return m.GetStringMock(key)
	}
	return cast.ToString(m.Values[key])
}

func (m *MockConfigHook) GetBool(key string) bool {
	if m.GetBoolMock != nil {
		return m.GetBoolMock(key)
	}
	return cast.ToBool(m.Values[key])
}

func (m *MockConfigHook) GetInt(key string) int {
	if m.GetIntMock != nil {
		return m.GetIntMock(key)
	}
	return cast.ToInt(m.Values[key])
}

func (m *MockConfigHook) GetIntOrElse(key string, orElse int) int {
	if _, ok := m.Values[key]; !ok && m.GetIntMock == nil {
		return orElse
	}
	return m.GetInt(key)
}

func (m *MockConfigHook) BindFlag(configPath string, f *pflag.Flag) error {
	if m.BindFlagMock != nil {
		return m.BindFlagMock(configPath, f)
	}
	return nil
}

func (m *MockConfigHook) GetStringSlice(key string) []string {
	if m.GetStringSliceMock != nil {
		return m.GetStringSliceMock(key)
	}
	return cast.ToStringSlice(m.Values[key])
}

func (m *MockConfigHook) GetPath() string {
	if m.GetPathMock != nil {
		return m.GetPathMock()
	}
	return ""
}
