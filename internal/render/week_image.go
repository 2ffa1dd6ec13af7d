package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/siddugarlapati/Tailor-talk/internal/model"
)

// Константы размеров и отступов
const (
	imageWidth      = 1200
	imageHeight     = 800
	headerHeight    = 80
	leftLabelsWidth = 70
	dayPaddingX     = 6
	totalDaysInWeek = 7

	minSlotHeight    = 8.0
	slotBorderRadius = 5.0

	defaultMinHour = 8
	defaultMaxHour = 20
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	textColor       = color.RGBA{80, 85, 90, 255}
	hourLabelColor  = color.RGBA{110, 115, 120, 255}
	hourLineColor   = color.NRGBA{200, 202, 205, 255}
	evenDayColor    = color.NRGBA{240, 240, 240, 255}
	oddDayColor     = color.NRGBA{228, 229, 231, 255}
	todayBgColor    = color.NRGBA{255, 99, 71, 60}
	bookedColor     = color.RGBA{255, 182, 193, 255}
	bookedTextColor = color.RGBA{120, 40, 50, 255}
)

// WeekBounds возвращает границы недели для момента t:
// понедельник 00:00 и следующий понедельник 00:00
func WeekBounds(t time.Time) (time.Time, time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	sinceMonday := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -sinceMonday)
	return start, start.AddDate(0, 0, 7)
}

// WeekImage рисует сетку недели с занятыми слотами и возвращает PNG.
// now нужен только для подсветки сегодняшнего дня.
func WeekImage(weekStart time.Time, events []*model.CalendarEvent, now time.Time) ([]byte, error) {
	minHour, maxHour := hourRange(events)
	totalHours := maxHour - minHour + 1

	dayWidth := float64(imageWidth-leftLabelsWidth) / totalDaysInWeek
	gridHeight := float64(imageHeight - headerHeight)
	cellHeight := gridHeight / float64(totalHours)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	drawDayColumns(dc, weekStart, today, dayWidth)
	drawHourGrid(dc, minHour, maxHour, cellHeight)
	drawEvents(dc, weekStart, events, minHour, dayWidth, cellHeight)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

// hourRange подбирает диапазон часов так, чтобы все события попали в
// сетку; без событий используется дефолтный рабочий день
func hourRange(events []*model.CalendarEvent) (minHour, maxHour int) {
	minHour, maxHour = defaultMinHour, defaultMaxHour

	for _, event := range events {
		if h := event.StartTime.Hour(); h < minHour {
			minHour = h
		}
		endHour := event.EndTime.Hour()
		if event.EndTime.Minute() > 0 {
			endHour++
		}
		if endHour > maxHour {
			maxHour = endHour
		}
	}

	if maxHour > 23 {
		maxHour = 23
	}
	return minHour, maxHour
}

func drawDayColumns(dc *gg.Context, weekStart, today time.Time, dayWidth float64) {
	for i := 0; i < totalDaysInWeek; i++ {
		day := weekStart.AddDate(0, 0, i)
		x := float64(leftLabelsWidth) + float64(i)*dayWidth

		if i%2 == 0 {
			dc.SetColor(evenDayColor)
		} else {
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, headerHeight, dayWidth, float64(imageHeight-headerHeight))
		dc.Fill()

		if day.Equal(today) {
			dc.SetColor(todayBgColor)
			dc.DrawRectangle(x, headerHeight, dayWidth, float64(imageHeight-headerHeight))
			dc.Fill()
		}

		dc.SetColor(textColor)
		label := day.Format("Mon 02.01")
		dc.DrawStringAnchored(label, x+dayWidth/2, headerHeight/2, 0.5, 0.5)
	}
}

func drawHourGrid(dc *gg.Context, minHour, maxHour int, cellHeight float64) {
	for hour := minHour; hour <= maxHour; hour++ {
		y := float64(headerHeight) + float64(hour-minHour)*cellHeight

		dc.SetColor(hourLineColor)
		dc.SetLineWidth(1)
		dc.DrawLine(leftLabelsWidth, y, imageWidth, y)
		dc.Stroke()

		dc.SetColor(hourLabelColor)
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hour), leftLabelsWidth/2, y+cellHeight/2, 0.5, 0.5)
	}
}

func drawEvents(dc *gg.Context, weekStart time.Time, events []*model.CalendarEvent, minHour int, dayWidth, cellHeight float64) {
	for _, event := range events {
		// Приводим к таймзоне недели: в базе времена в TIMESTAMPTZ
		start := event.StartTime.In(weekStart.Location())
		end := event.EndTime.In(weekStart.Location())

		dayIdx := daysBetween(weekStart, start)
		if dayIdx < 0 || dayIdx >= totalDaysInWeek {
			continue
		}

		x := float64(leftLabelsWidth) + float64(dayIdx)*dayWidth + dayPaddingX
		width := dayWidth - 2*dayPaddingX

		startOffset := float64(start.Hour()-minHour) + float64(start.Minute())/60
		duration := end.Sub(start).Hours()

		y := float64(headerHeight) + startOffset*cellHeight
		height := duration * cellHeight
		if height < minSlotHeight {
			height = minSlotHeight
		}

		dc.SetColor(bookedColor)
		dc.DrawRoundedRectangle(x, y, width, height, slotBorderRadius)
		dc.Fill()

		dc.SetColor(bookedTextColor)
		label := fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
		dc.DrawStringAnchored(label, x+width/2, y+height/2, 0.5, 0.5)
	}
}

// daysBetween считает целые календарные дни от from до момента t
func daysBetween(from, t time.Time) int {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, from.Location())
	return int(day.Sub(from).Hours() / 24)
}
