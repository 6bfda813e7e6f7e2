package widget

import "github.com/nvkalinin/widget-calendar/log"

// Vars — хранилище переменных виджетов.
type Vars interface {
	GetVar(section, key string) (string, bool)
	PutVar(section, key, val string) error
}

// LoadVar возвращает сохраненное значение переменной. Если переменная не задана, в хранилище
// записывается def, и возвращается def.
func LoadVar(vars Vars, section, key, def string) string {
	if val, ok := vars.GetVar(section, key); ok {
		return val
	}

	writeVar(vars, section, key, def)
	return def
}

// writeVar не возвращает ошибку: состояние виджета уже изменено, а несохраненная переменная
// просто вернется к значению по умолчанию после перезапуска.
func writeVar(vars Vars, section, key, val string) {
	if err := vars.PutVar(section, key, val); err != nil {
		log.Printf("[WARN] widget cannot save %s/%s: %v", section, key, err)
	}
}
