package session

// praise is the pool of exclamations shown before a correct-answer message.
var praise = []string{
	"Обалдеть",
	"Отлично",
	"Замечательно",
	"Чудесно",
	"Классно",
	"Ура",
	"Ваще чума",
	"Ёлки",
	"Вот так дела",
	"Ой-вей",
	"Недурно",
}

// User-facing messages.
const (
	msgHeader       = "Вопрос %d из %d (%s)"
	msgChooseOneOf  = "Нужно выбрать один из следующих вариантов: %s.\n\n"
	msgCorrect      = "%s, это правильный ответ!"
	msgIncorrect    = "Неверно! Правильный ответ: %d. %s"
	msgReplayBanner = "Почти закончили, но теперь повторим вопросы с ошибками:"
)
