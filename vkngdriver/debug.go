package vkngdriver

import (
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/triangle/bootstrap"
)

var severities = []struct {
	ours bootstrap.MessageSeverity
	vk   ext_debug_utils.DebugUtilsMessageSeverityFlags
}{
	{bootstrap.SeverityVerbose, ext_debug_utils.SeverityVerbose},
	{bootstrap.SeverityInfo, ext_debug_utils.SeverityInfo},
	{bootstrap.SeverityWarning, ext_debug_utils.SeverityWarning},
	{bootstrap.SeverityError, ext_debug_utils.SeverityError},
}

var messageTypes = []struct {
	ours bootstrap.MessageType
	vk   ext_debug_utils.DebugUtilsMessageTypeFlags
}{
	{bootstrap.TypeGeneral, ext_debug_utils.TypeGeneral},
	{bootstrap.TypeValidation, ext_debug_utils.TypeValidation},
	{bootstrap.TypePerformance, ext_debug_utils.TypePerformance},
}

func toVkSeverity(s bootstrap.MessageSeverity) ext_debug_utils.DebugUtilsMessageSeverityFlags {
	var flags ext_debug_utils.DebugUtilsMessageSeverityFlags
	for _, m := range severities {
		if s&m.ours != 0 {
			flags |= m.vk
		}
	}
	return flags
}

func fromVkSeverity(flags ext_debug_utils.DebugUtilsMessageSeverityFlags) bootstrap.MessageSeverity {
	var s bootstrap.MessageSeverity
	for _, m := range severities {
		if flags&m.vk != 0 {
			s |= m.ours
		}
	}
	return s
}

func toVkMessageType(t bootstrap.MessageType) ext_debug_utils.DebugUtilsMessageTypeFlags {
	var flags ext_debug_utils.DebugUtilsMessageTypeFlags
	for _, m := range messageTypes {
		if t&m.ours != 0 {
			flags |= m.vk
		}
	}
	return flags
}

func fromVkMessageType(flags ext_debug_utils.DebugUtilsMessageTypeFlags) bootstrap.MessageType {
	var t bootstrap.MessageType
	for _, m := range messageTypes {
		if flags&m.vk != 0 {
			t |= m.ours
		}
	}
	return t
}

func messengerOptions(info bootstrap.MessengerCreateInfo) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	callback := info.Callback

	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: toVkSeverity(info.Severities),
		MessageType:     toVkMessageType(info.Types),
		UserCallback: func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			if callback == nil || data == nil {
				return false
			}
			return callback(bootstrap.DiagnosticMessage{
				Severity: fromVkSeverity(severity),
				Type:     fromVkMessageType(msgType),
				IDName:   data.MessageIDName,
				Message:  data.Message,
			})
		},
	}
}

type debugUtils struct {
	driver ext_debug_utils.ExtensionDriver
}

func (d *debugUtils) CreateMessenger(info bootstrap.MessengerCreateInfo) (bootstrap.DebugMessenger, error) {
	messenger, _, err := d.driver.CreateDebugUtilsMessenger(nil, messengerOptions(info))
	if err != nil {
		return nil, err
	}
	return &debugMessenger{driver: d.driver, handle: messenger}, nil
}

type debugMessenger struct {
	driver ext_debug_utils.ExtensionDriver
	handle ext_debug_utils.DebugUtilsMessenger
}

func (m *debugMessenger) Destroy() {
	m.driver.DestroyDebugUtilsMessenger(m.handle, nil)
}
