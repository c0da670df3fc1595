/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */
package log

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/salesflow/orderdesk/internal/system/constants"
)

type LogTestSuite struct {
	suite.Suite
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}

func (suite *LogTestSuite) TearDownTest() {
	logger = nil
	once = sync.Once{}
}

func (suite *LogTestSuite) TestGetLoggerFromEnvironment() {
	testCases := []struct {
		name     string
		logLevel string
		format   string
		isValid  bool
	}{
		{"Defaults", "", "", true},
		{"DebugConsole", "debug", "console", true},
		{"WarnJSON", "WARN", "json", true},
		{"InvalidLevel", "unknown", "", false},
		{"InvalidFormat", "info", "xml", false},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			logger = nil
			once = sync.Once{}
			t.Setenv(constants.LogLevelEnvironmentVariable, tc.logLevel)
			t.Setenv(constants.LogFormatEnvironmentVariable, tc.format)

			if tc.isValid {
				assert.NotPanics(t, func() { _ = GetLogger() })
			} else {
				assert.Panics(t, func() { _ = GetLogger() })
			}
		})
	}
}

func (suite *LogTestSuite) TestParseLogLevel() {
	testCases := []struct {
		name      string
		logLevel  string
		expected  zapcore.Level
		expectErr bool
	}{
		{"Debug", "debug", zapcore.DebugLevel, false},
		{"Warn", "Warn", zapcore.WarnLevel, false},
		{"Error", "error", zapcore.ErrorLevel, false},
		{"Invalid", "verbose", zapcore.ErrorLevel, true},
		{"Blank", "  ", zapcore.InfoLevel, true},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			level, err := parseLogLevel(tc.logLevel)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, level)
		})
	}
}

func (suite *LogTestSuite) TestJSONFormatWritesStructuredEntries() {
	sink := &zaptest.Buffer{}
	jsonLogger, err := newLogger("info", "json", sink)
	suite.Require().NoError(err)

	jsonLogger.With(String(LoggerKeyProcessInstanceKey, "2251799813685249")).
		Info("Reconciled process", Int("steps", 3))
	jsonLogger.Debug("dropped below level")

	lines := sink.Lines()
	suite.Require().Len(lines, 1)
	var entry map[string]interface{}
	suite.Require().NoError(json.Unmarshal([]byte(lines[0]), &entry))
	suite.Equal("info", entry["level"])
	suite.Equal("Reconciled process", entry["msg"])
	suite.Equal("2251799813685249", entry[LoggerKeyProcessInstanceKey])
	suite.EqualValues(3, entry["steps"])
}

func (suite *LogTestSuite) TestConsoleFormatUsesCapitalLevels() {
	sink := &zaptest.Buffer{}
	consoleLogger, err := newLogger("debug", " Console ", sink)
	suite.Require().NoError(err)

	consoleLogger.Debug("Rendering form")

	suite.Require().Len(sink.Lines(), 1)
	suite.Contains(sink.Lines()[0], "DEBUG")
	suite.Contains(sink.Lines()[0], "Rendering form")
}

func (suite *LogTestSuite) TestWithAddsFields() {
	core, recorded := observer.New(zapcore.DebugLevel)
	base := &Logger{internal: zap.New(core), level: zapcore.DebugLevel}

	child := base.With(String(LoggerKeyComponentName, "Aggregator"))
	child.Warn("live source failed", Error(errors.New("connection refused")), Int("attempt", 2))

	entries := recorded.All()
	suite.Len(entries, 1)
	suite.Equal(zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	suite.Equal("Aggregator", fields[LoggerKeyComponentName])
	suite.Equal("connection refused", fields["error"])
	suite.EqualValues(2, fields["attempt"])
}

func (suite *LogTestSuite) TestIsDebugEnabled() {
	core, _ := observer.New(zapcore.InfoLevel)
	infoLogger := &Logger{internal: zap.New(core), level: zapcore.InfoLevel}
	suite.False(infoLogger.IsDebugEnabled())

	debugLogger := &Logger{internal: zap.New(core), level: zapcore.DebugLevel}
	suite.True(debugLogger.IsDebugEnabled())
}
