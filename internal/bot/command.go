package bot

import (
	"strings"

	tele "gopkg.in/telebot.v3"
)

// teleCommand адаптирует tele.Context к command.Command
type teleCommand struct {
	name string
	c    tele.Context
}

func newTeleCommand(name string, c tele.Context) *teleCommand {
	return &teleCommand{name: name, c: c}
}

func (t *teleCommand) Name() string {
	return t.name
}

// Args делит текст после команды по пробельным символам
func (t *teleCommand) Args() []string {
	msg := t.c.Message()
	if msg == nil {
		return nil
	}
	return strings.Fields(msg.Payload)
}

// Caller возвращает отображаемое имя: имя, затем username, затем "Аноним".
// Ключом в хранилище служит именно оно, поэтому смена имени в Telegram
// начинает новую запись.
func (t *teleCommand) Caller() string {
	return callerName(t.c.Sender())
}

func (t *teleCommand) Reply(text string) error {
	return t.c.Send(text)
}

func callerName(u *tele.User) string {
	if u == nil {
		return AnonymousName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return AnonymousName
}

func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}
