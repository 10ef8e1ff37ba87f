package i18n

import "CountDown/timer"

// EngineMessages returns the countdown messages in the current language.
func EngineMessages() timer.Messages {
	m := timer.DefaultMessages()
	return timer.Messages{
		TimerSet:          T(m.TimerSet),
		EmptyInput:        T(m.EmptyInput),
		Unrecognized:      T(m.Unrecognized),
		Completed:         T(m.Completed),
		NotificationTitle: T(m.NotificationTitle),
		NotificationBody:  T(m.NotificationBody),
	}
}
