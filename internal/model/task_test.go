package model

import "testing"

func TestDownloadTask_GetETAString(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{30, "00:30"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7323, "02:02:03"},
	}

	for _, test := range tests {
		task := &DownloadTask{ETASec: test.etaSec}
		result := task.GetETAString()
		if result != test.expected {
			t.Errorf("GetETAString() with ETASec=%d = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestDownloadTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title      string
		id         string
		outputPath string
		expected   string
	}{
		{"Video Title", "abc", "", "Video Title"},
		{"", "abc", "", "https://www.youtube.com/watch?v=abc"},
		{"", "abc", "/tmp/downloads/Some Song.mp3", "Some Song"},
		{"", "abc", `C:\downloads\Clip.mp4`, "Clip"},
		{"", "", "", ""},
	}

	for _, test := range tests {
		task := &DownloadTask{
			Result:     SearchResult{ID: test.id, Title: test.title},
			OutputPath: test.outputPath,
		}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with title='%s', id='%s', path='%s' = '%s', expected '%s'",
				test.title, test.id, test.outputPath, result, test.expected)
		}
	}
}

func TestParseDownloadMode(t *testing.T) {
	tests := []struct {
		input    string
		expected DownloadMode
	}{
		{"audio", DownloadAudio},
		{"video", DownloadVideo},
		{" Video ", DownloadVideo},
		{"", DownloadAudio},
		{"mp4", DownloadAudio},
	}

	for _, test := range tests {
		if got := ParseDownloadMode(test.input); got != test.expected {
			t.Errorf("ParseDownloadMode(%q) = %s, expected %s", test.input, got, test.expected)
		}
	}
}
