package locale

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/nvkalinin/widget-calendar/log"
)

const DefaultLocale = "en-US"

// Provider отдает названия дней и месяцев и первый день недели для идентификатора локали.
// Некорректные и неизвестные локали молча заменяются локалью по умолчанию.
type Provider struct {
	def     language.Tag
	names   []Names // Индексы совпадают с тегами в matcher, names[0] — для def.
	matcher language.Matcher
}

// NewProvider собирает встроенные локали и extra (extra перекрывают встроенные с тем же ключом).
func NewProvider(def string, extra ...Table) (*Provider, error) {
	defTag, err := language.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale '%s': %w", def, err)
	}

	table, err := parseTable(embedded)
	if err != nil {
		return nil, fmt.Errorf("embedded locales: %w", err)
	}
	for _, t := range extra {
		for id, names := range t {
			table[id] = names
		}
	}

	type entry struct {
		tag   language.Tag
		names Names
	}
	entries := make([]entry, 0, len(table))
	for id, names := range table {
		tag, err := language.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid locale key '%s': %w", id, err)
		}
		entries = append(entries, entry{tag: tag, names: names})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].tag.String() < entries[j].tag.String() })

	tags := make([]language.Tag, len(entries))
	for i, e := range entries {
		tags[i] = e.tag
	}

	// Первый тег matcher-а используется, когда ничего не подошло, поэтому туда ставим язык локали по умолчанию.
	_, idx, conf := language.NewMatcher(tags).Match(defTag)
	if conf == language.No {
		return nil, fmt.Errorf("no locale data for default locale '%s'", def)
	}
	entries[0], entries[idx] = entries[idx], entries[0]

	p := &Provider{
		def:   defTag,
		names: make([]Names, len(entries)),
	}
	for i, e := range entries {
		tags[i] = e.tag
		p.names[i] = e.names
	}
	p.matcher = language.NewMatcher(tags)

	log.Printf("[DEBUG] locale: default %s, %d locales loaded", defTag, len(entries))
	return p, nil
}

func (p *Provider) Default() string {
	return p.def.String()
}

func (p *Provider) parse(locale string) language.Tag {
	if strings.TrimSpace(locale) == "" {
		return p.def
	}

	tag, err := language.Parse(locale)
	if err != nil {
		log.Printf("[DEBUG] locale: '%s' falls back to %s: %v", locale, p.def, err)
		return p.def
	}
	return tag
}

func (p *Provider) lookup(locale string) *Names {
	_, idx, _ := p.matcher.Match(p.parse(locale))
	return &p.names[idx]
}

// Resolve возвращает каноничный идентификатор локали, который реально будет использован.
func (p *Provider) Resolve(locale string) string {
	return p.parse(locale).String()
}

// WeekStart учитывает расширение -u-fw- (en-US-u-fw-mon), иначе берет первый день недели региона.
// Если регион не указан, он выводится из языка (de → DE).
func (p *Provider) WeekStart(locale string) time.Weekday {
	tag := p.parse(locale)

	if wd, ok := parseWeekday(tag.TypeForKey("fw")); ok {
		return wd
	}

	region, conf := tag.Region()
	if conf == language.No {
		region, _ = p.def.Region()
	}
	return regionFirstDay(region.String())
}

func (p *Provider) ShortWeekdays(locale string) [7]string {
	var res [7]string
	copy(res[:], p.lookup(locale).WeekdaysShort)
	return res
}

func (p *Provider) LongWeekday(locale string, wd time.Weekday) string {
	return p.lookup(locale).WeekdaysLong[wd]
}

func (p *Provider) MonthName(locale string, m time.Month) string {
	return p.lookup(locale).Months[m-1]
}

// DayPeriod возвращает обозначение AM или PM.
func (p *Provider) DayPeriod(locale string, pm bool) string {
	names := p.lookup(locale)
	if pm {
		return names.PM
	}
	return names.AM
}

// FormatDate форматирует дату полностью: день недели, число, месяц, год.
func (p *Provider) FormatDate(locale string, t time.Time) string {
	names := p.lookup(locale)

	month := names.Months[t.Month()-1]
	if len(names.MonthsGenitive) == 12 {
		month = names.MonthsGenitive[t.Month()-1]
	}

	r := strings.NewReplacer(
		"{weekday}", names.WeekdaysLong[t.Weekday()],
		"{day}", strconv.Itoa(t.Day()),
		"{month}", month,
		"{year}", strconv.Itoa(t.Year()),
	)
	return r.Replace(names.DatePattern)
}
