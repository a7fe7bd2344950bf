package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/samulyakartem/family-expense-bot/internal/service"
)

// Generator рисует графики для отчётов.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// CategoryBar строит столбчатую диаграмму расходов по категориям.
// Возвращает nil без ошибки, если рисовать нечего.
func (g *Generator) CategoryBar(categories []service.CategorySum) ([]byte, error) {
	if len(categories) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(categories))
	for _, c := range categories {
		bars = append(bars, chart.Value{
			Label: c.Name,
			// Точность decimal здесь не нужна, график оценочный.
			Value: c.Sum.InexactFloat64(),
		})
	}

	graph := chart.BarChart{
		Width:    1200,
		Height:   600,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.Style{
			FontSize:  10,
			FontColor: chart.ColorBlack,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f₽", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category chart: %w", err)
	}
	return buf.Bytes(), nil
}
