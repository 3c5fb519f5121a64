package bootstrap

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

type MessageSeverity uint32

const (
	SeverityVerbose MessageSeverity = 1 << iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = []struct {
	flag MessageSeverity
	name string
}{
	{SeverityVerbose, "Verbose"},
	{SeverityInfo, "Info"},
	{SeverityWarning, "Warning"},
	{SeverityError, "Error"},
}

func (s MessageSeverity) String() string {
	var names []string
	for _, n := range severityNames {
		if s&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

type MessageType uint32

const (
	TypeGeneral MessageType = 1 << iota
	TypeValidation
	TypePerformance
)

var typeNames = []struct {
	flag MessageType
	name string
}{
	{TypeGeneral, "General"},
	{TypeValidation, "Validation"},
	{TypePerformance, "Performance"},
}

func (t MessageType) String() string {
	var names []string
	for _, n := range typeNames {
		if t&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// DiagnosticMessage is one message delivered by the validation layers.
type DiagnosticMessage struct {
	Severity MessageSeverity
	Type     MessageType
	IDName   string
	Message  string
}

// MessengerCreateInfo selects which messages reach Callback. Callback runs
// synchronously on the thread making the API call and must not call back
// into the API. Returning true would abort that call; handlers here never do.
type MessengerCreateInfo struct {
	Severities MessageSeverity
	Types      MessageType
	Callback   func(msg DiagnosticMessage) bool
}

// DiagnosticSink owns the debug messenger installed on an instance.
type DiagnosticSink struct {
	messenger DebugMessenger
}

func (s *DiagnosticSink) Destroy() {
	if s == nil || s.messenger == nil {
		return
	}
	s.messenger.Destroy()
	s.messenger = nil
}

func messengerCreateInfo(cfg Config) MessengerCreateInfo {
	callback := cfg.DiagnosticHandler
	if callback == nil {
		callback = LogDiagnostics(cfg.logger())
	}

	return MessengerCreateInfo{
		Severities: SeverityVerbose | SeverityWarning | SeverityError,
		Types:      TypeGeneral | TypeValidation | TypePerformance,
		Callback:   callback,
	}
}

// CreateDiagnosticSink installs a debug messenger on the instance. The debug
// entry points are resolved when the instance is created; when they are
// missing the sink cannot be built.
func CreateDiagnosticSink(instance Instance, info MessengerCreateInfo) (*DiagnosticSink, error) {
	debugUtils := instance.DebugUtils()
	if debugUtils == nil {
		return nil, configurationErrorf("failed to set up debug callback: debug utils entry points not available")
	}

	messenger, err := debugUtils.CreateMessenger(info)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to set up debug callback"), ErrConfiguration)
	}

	return &DiagnosticSink{messenger: messenger}, nil
}

// LogDiagnostics returns a handler that writes every message to logger at a
// level matching its severity.
func LogDiagnostics(logger logrus.FieldLogger) func(msg DiagnosticMessage) bool {
	return func(msg DiagnosticMessage) bool {
		entry := logger.WithFields(logrus.Fields{
			"severity": msg.Severity,
			"type":     msg.Type,
		})
		if msg.IDName != "" {
			entry = entry.WithField("id", msg.IDName)
		}

		switch {
		case msg.Severity&SeverityError != 0:
			entry.Error(msg.Message)
		case msg.Severity&SeverityWarning != 0:
			entry.Warn(msg.Message)
		case msg.Severity&SeverityInfo != 0:
			entry.Info(msg.Message)
		default:
			entry.Debug(msg.Message)
		}
		return false
	}
}
