package table

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeItemList_News(t *testing.T) {
	body := `{
		"lastBuildDate": "Mon, 06 Mar 2023 10:00:00 +0900",
		"total": 2345,
		"start": 1,
		"display": 2,
		"items": [
			{"title": "<b>커피</b> 가격", "originallink": "https://a.example", "link": "https://n.news.naver.com/1", "description": "d1", "pubDate": "Mon, 06 Mar 2023 09:00:00 +0900"},
			{"title": "차 시장", "link": "https://n.news.naver.com/2", "description": "d2", "pubDate": "Mon, 06 Mar 2023 08:00:00 +0900", "extra": 1}
		]
	}`

	list, err := DecodeItemList([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, 2345, list.Total)
	assert.Equal(t, 2, list.Display)
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, []string{"title", "originallink", "link", "description", "pubDate", "extra"}, list.Header())

	title, ok := list.Value(0, "title")
	require.True(t, ok)
	assert.Equal(t, "<b>커피</b> 가격", title)

	rows := list.Rows()
	assert.Nil(t, rows[1][1], "second item has no originallink")
	assert.Equal(t, float64(1), rows[1][5])

	out, err := json.Marshal(list)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"originallink":"https://a.example"`)
}

func TestDecodeItemList_EmptyItems(t *testing.T) {
	list, err := DecodeItemList([]byte(`{"total":0,"start":1,"display":0,"items":[]}`))
	require.NoError(t, err)
	assert.Equal(t, 0, list.Len())
	assert.Empty(t, list.Header())
}

func TestDecodeItemList_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ``},
		{"missing items", `{"total":0}`},
		{"null item", `{"items":[null]}`},
		{"item not object", `{"items":["x"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeItemList([]byte(tt.body))
			var shapeErr *ShapeError
			assert.True(t, errors.As(err, &shapeErr), "got %v", err)
		})
	}
}

func TestDecodeDocument(t *testing.T) {
	body := `{"status":"OK","meta":{"totalCount":1},"addresses":[{"roadAddress":"서울특별시 중구 세종대로 110","x":"126.97","y":"37.56"}],"errorMessage":""}`

	doc, err := DecodeDocument([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, []string{"status", "meta", "addresses", "errorMessage"}, doc.Keys())

	status, ok := doc.Get("status")
	require.True(t, ok)
	assert.Equal(t, "OK", status)

	var typed struct {
		Addresses []struct {
			RoadAddress string `json:"roadAddress"`
		} `json:"addresses"`
	}
	require.NoError(t, doc.Decode(&typed))
	assert.Equal(t, "서울특별시 중구 세종대로 110", typed.Addresses[0].RoadAddress)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(out))
}

func TestDecodeDocument_NotObject(t *testing.T) {
	for _, body := range []string{``, `[1]`, `"text"`} {
		_, err := DecodeDocument([]byte(body))
		var shapeErr *ShapeError
		assert.True(t, errors.As(err, &shapeErr), "body %q", body)
	}
}
