package store

// Vars — переменные одной секции (виджета): ключ → значение.
type Vars map[string]string

func (v Vars) Copy() Vars {
	vCopy := make(Vars, len(v))
	for key, val := range v {
		vCopy[key] = val
	}
	return vCopy
}

// Sections — все секции хранилища.
type Sections map[string]Vars

func (s Sections) Copy() Sections {
	sCopy := make(Sections, len(s))
	for name, vars := range s {
		sCopy[name] = vars.Copy()
	}
	return sCopy
}
