package bot

import "time"

// Настройки бота
const (
	BotPollerTimeout = 10 * time.Second
	HandlerTimeout   = 15 * time.Second
)

// Имя пользователя, если Telegram не прислал ни имени, ни username
const AnonymousName = "Аноним"

// MsgErrorStorage - ответ, если не удалось прочитать или сохранить данные
const MsgErrorStorage = "❌ Не получилось прочитать или сохранить данные. Попробуй ещё раз чуть позже."

// Ключи полей в логах
const (
	LogKeyRequestID = "request_id"
	LogKeyCommand   = "command"
	LogKeyUser      = "user"
	LogKeyChat      = "chat_id"
)
