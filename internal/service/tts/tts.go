package tts

import "context"

// Synthesizer абстракция TTS. Метод синтезирует и воспроизводит речь, контент не возвращает.
// Провайдер-специфичная конфигурация передаётся в конструктор клиента.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) error
}
