package entity

// ColorTheme is the UI theme preference stored on a user.
type ColorTheme string

const (
	ThemeLight ColorTheme = "light"
	ThemeDark  ColorTheme = "dark"
)

func (c ColorTheme) Valid() bool {
	switch c {
	case ThemeLight, ThemeDark:
		return true
	}
	return false
}

// Language is the locale preference stored on a user.
type Language string

const (
	LangEnUS Language = "en_us"
	LangEnUK Language = "en_uk"
	LangPtBR Language = "pt_br"
	LangPtPT Language = "pt_pt"
	LangEsES Language = "es_es"
	LangFrFR Language = "fr_fr"
	LangDeDE Language = "de_de"
	LangJaJP Language = "ja_jp"
	LangZhCN Language = "zh_cn"
	LangRuRU Language = "ru_ru"
)

var languages = map[Language]struct{}{
	LangEnUS: {}, LangEnUK: {}, LangPtBR: {}, LangPtPT: {}, LangEsES: {},
	LangFrFR: {}, LangDeDE: {}, LangJaJP: {}, LangZhCN: {}, LangRuRU: {},
}

func (l Language) Valid() bool {
	_, ok := languages[l]
	return ok
}
