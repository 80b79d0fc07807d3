package extract

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstMatch(t *testing.T) {
	var calls []string
	mk := func(name, res string) Strategy {
		return func(string) (string, bool) {
			calls = append(calls, name)
			return res, res != ""
		}
	}

	res, ok := FirstMatch("text", mk("a", ""), mk("b", "second"), mk("c", "third"))
	require.True(t, ok)
	assert.Equal(t, "second", res)
	assert.Equal(t, []string{"a", "b"}, calls, "chain stops at first success")

	res, ok = FirstMatch("text")
	assert.False(t, ok)
	assert.Empty(t, res)
}

func TestCapitalizedName(t *testing.T) {
	s := CapitalizedName(ExcludedNameWords)
	tbl := []struct {
		name string
		text string
		res  string
		ok   bool
	}{
		{"three words", "Указом Президента назначен Иванов Иван Иванович", "Иванов Иван Иванович", true},
		{"two words", "министром назначена Анна Петрова.", "Анна Петрова", true},
		{"excluded candidate falls through", "Совета Министров Республики утвердил, Сергей Ковалев доволен", "Сергей Ковалев", true},
		{"only institutions", "Председатель Комитета госконтроля и Национальный Банк", "", false},
		{"single capitalized word", "Лукашенко принял решение", "", false},
		{"latin ignored", "John Smith appointed", "", false},
		{"newline between words", "назначен Петров\nПётр Сергеевич", "Петров Пётр Сергеевич", true},
		{"empty", "", "", false},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := s(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.res, res)
		})
	}
}

func TestPositionStrategies(t *testing.T) {
	chain := PositionStrategies()
	require.Len(t, chain, 6)

	tbl := []struct {
		name string
		text string
		res  string
		ok   bool
	}{
		{"to the position of", "Иванов назначен на должность  министра\nспорта и туризма.",
			"министра спорта и туризма", true},
		{"position template wins over appointed", "Петров назначен послом. Сидорова переведена на должность директора завода.",
			"директора завода", true},
		{"appointed", "Петров назначен председателем Государственного комитета, сообщили в пресс-службе.",
			"председателем Государственного комитета, сообщили в пресс-службе", true},
		{"appointed feminine", "Анна Петрова назначена заместителем министра;", "заместителем министра", true},
		{"short candidate skipped", "Он назначен им. Иван Иванов – новый заместитель министра финансов.",
			"новый заместитель министра финансов", true},
		{"em dash", "Новый глава ведомства — бывший руководитель аппарата правительства.",
			"бывший руководитель аппарата правительства", true},
		{"keyword sentence fallback", "Кадровые решения. Свой пост сохранил прокурор области. Прочее.",
			"Свой пост сохранил прокурор области", true},
		{"nothing", "Сегодня прошло совещание.", "", false},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := FirstMatch(tt.text, chain...)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.res, res)
		})
	}
}

func TestTemplate_MinLength(t *testing.T) {
	s := Template(regexp.MustCompile(`назначен\s+([^.]+)`))
	_, ok := s("назначен им.")
	assert.False(t, ok)
	_, ok = s("назначен  главе ,")
	assert.False(t, ok, "5 characters after cleanup is not enough")

	res, ok := s("назначен послом.")
	assert.True(t, ok)
	assert.Equal(t, "послом", res)
}

func TestExtractor_Extract(t *testing.T) {
	e := NewDefault()

	res := e.Extract("Президент принял кадровые решения. Петров Сергей Иванович назначен председателем комитета.")
	assert.True(t, res.PersonFound)
	assert.Equal(t, "Петров Сергей Иванович", res.PersonName)
	assert.True(t, res.PositionFound)
	assert.Equal(t, "председателем комитета", res.Position)

	res = e.Extract("ничего интересного")
	assert.False(t, res.PersonFound)
	assert.False(t, res.PositionFound)
	assert.Equal(t, "Не удалось определить ФИО", res.PersonOrSentinel())
	assert.Equal(t, "Должность не указана", res.PositionOrSentinel())
}
