package pushups

// Имена команд
const (
	CmdStart   = "start"
	CmdHelp    = "help"
	CmdPush    = "push"
	CmdStats   = "stats"
	CmdLog     = "log"
	CmdSetGoal = "setgoal"
)

// Отметки выполнения нормы
const (
	MarkDone   = "✅"
	MarkMissed = "❌"
)

// Тексты ответов
const (
	MsgStartIntro = "Привет! Я бот для учёта отжиманий.\nИспользуй команды:"
	MsgHelpIntro  = "Команды:"

	MsgPushUsage    = "Пожалуйста, укажи количество повторений через пробел, например:\n/push 25"
	MsgSetGoalUsage = "Пожалуйста, укажи цель через пробел, например:\n/setgoal 150"
	MsgNotPositive  = "Количество должно быть положительным числом."
	MsgTooLarge     = "Слишком большое число."

	MsgPushedTemplate  = "%s: добавлено %d повторений.\nИтого сегодня: %d отжиманий."
	MsgGoalSetTemplate = "🎯 %s: цель на сегодня — %d отжиманий."

	MsgNoData = "Сегодня ещё нет данных."

	MsgStatsHeaderTemplate   = "📊 Статистика за %s:"
	MsgStatsLineTemplate     = "• %s: %d %s"
	MsgStatsGoalLineTemplate = "• %s: %d/%d %s"
	MsgDefaultGoalNote       = " (цель по умолчанию)"

	MsgLogHeaderTemplate = "📋 Подробности подходов за %s:"
	MsgLogLineTemplate   = "%s: %s"
)

// Описания команд для справки и меню Telegram
const (
	DescStart   = "начать работу с ботом"
	DescHelp    = "помощь"
	DescPush    = "добавить подход, например /push 25"
	DescStats   = "статистика за сегодня"
	DescLog     = "подробности подходов"
	DescSetGoal = "поставить цель на сегодня, например /setgoal 150"
)
