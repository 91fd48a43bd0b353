package ui

import (
	"strings"

	"fyne.io/fyne/v2/lang"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySearch            = "search"
	KeyStop              = "stop"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyQueryPlaceholder  = "query_placeholder"
	KeyEnterQuery        = "enter_query"
	KeyDownloads         = "downloads"
	KeyColumnTitle       = "column_title"
	KeyColumnUploader    = "column_uploader"
	KeyColumnViews       = "column_views"
	KeyColumnDate        = "column_date"
	KeyPlay              = "play"
	KeyPlayAudio         = "play_audio"
	KeyDownloadAudio     = "download_audio"
	KeyDownloadVideo     = "download_video"
	KeyOpenInBrowser     = "open_in_browser"
	KeyOpenFolder        = "open_folder"
	KeyReveal            = "reveal"
	KeySelectVideo       = "select_video"
	KeyAlreadyInQueue    = "already_in_queue"
	KeyDownloadCompleted = "download_completed"

	// search status
	KeySearching            = "searching"
	KeyAddedFormat          = "added_format"
	KeyStopping             = "stopping"
	KeySearchStopped        = "search_stopped"
	KeyNoVideosFound        = "no_videos_found"
	KeySearchFinishedFormat = "search_finished_format"
	KeyTimeoutFormat        = "timeout_format"
	KeyErrorFormat          = "error_format"
	KeyStopErrorFormat      = "stop_error_format"

	// actions
	KeyDownloadStartedFormat = "download_started_format"
	KeyDownloadedFormat      = "downloaded_format"
	KeyDownloadFailedFormat  = "download_failed_format"
	KeyPlayingFormat         = "playing_format"
	KeyPlaybackErrorFormat   = "playback_error_format"
	KeyBrowserErrorFormat    = "browser_error_format"
	KeyFolderErrorFormat     = "folder_error_format"
	KeyPlaylistLoading       = "playlist_loading"
	KeyPlaylistLoadedFormat  = "playlist_loaded_format"

	// settings dialog
	KeyDownloadDirectory = "download_directory"
	KeyResultCount       = "result_count"
	KeyInactivityTimeout = "inactivity_timeout"
	KeyYtdlpPath         = "ytdlp_path"
	KeyPlayerPath        = "player_path"
	KeyDownloadMode      = "download_mode"
	KeyDebugLogging      = "debug_logging"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the OS locale
// when it is translated, English otherwise.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	} else {
		l.currentLanguage = "en"
	}
}

func systemLanguage() string {
	locale := strings.ToLower(string(lang.SystemLocale()))
	code, _, _ := strings.Cut(locale, "-")
	return code
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if text, found := l.texts["en"][key]; found {
		return text
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Search",
		KeySearch:            "Search",
		KeyStop:              "Stop",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyQueryPlaceholder:  "Search YouTube or paste a playlist URL",
		KeyEnterQuery:        "Enter a query.",
		KeyDownloads:         "Downloads",
		KeyColumnTitle:       "Title",
		KeyColumnUploader:    "Uploader",
		KeyColumnViews:       "Views",
		KeyColumnDate:        "Date",
		KeyPlay:              "Play",
		KeyPlayAudio:         "Play audio",
		KeyDownloadAudio:     "Download audio",
		KeyDownloadVideo:     "Download video",
		KeyOpenInBrowser:     "Open in browser",
		KeyOpenFolder:        "Open folder",
		KeyReveal:            "Show",
		KeySelectVideo:       "Select a video first.",
		KeyAlreadyInQueue:    "Already in queue",
		KeyDownloadCompleted: "Download completed",

		KeySearching:            "Searching...",
		KeyAddedFormat:          "Added: %d",
		KeyStopping:             "Stopping...",
		KeySearchStopped:        "Search stopped.",
		KeyNoVideosFound:        "No videos found.",
		KeySearchFinishedFormat: "Search finished. Found: %d",
		KeyTimeoutFormat:        "Stopped by timeout (%d s).",
		KeyErrorFormat:          "Error: %s",
		KeyStopErrorFormat:      "Stop error: %s",

		KeyDownloadStartedFormat: "Downloading: %s",
		KeyDownloadedFormat:      "Downloaded: %s",
		KeyDownloadFailedFormat:  "Download failed: %s",
		KeyPlayingFormat:         "Playing: %s",
		KeyPlaybackErrorFormat:   "Playback error: %s",
		KeyBrowserErrorFormat:    "Could not open browser: %s",
		KeyFolderErrorFormat:     "Could not open folder: %s",
		KeyPlaylistLoading:       "Loading playlist...",
		KeyPlaylistLoadedFormat:  "Playlist: %d videos",

		KeyDownloadDirectory: "Download Directory",
		KeyResultCount:       "Results per Search",
		KeyInactivityTimeout: "Inactivity Timeout (seconds)",
		KeyYtdlpPath:         "yt-dlp Path",
		KeyPlayerPath:        "Player Path",
		KeyDownloadMode:      "Default Download Mode",
		KeyDebugLogging:      "Debug Logging",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Поиск",
		KeySearch:            "Найти",
		KeyStop:              "Стоп",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyQueryPlaceholder:  "Поиск на YouTube или URL плейлиста",
		KeyEnterQuery:        "Введите запрос.",
		KeyDownloads:         "Загрузки",
		KeyColumnTitle:       "Название",
		KeyColumnUploader:    "Автор",
		KeyColumnViews:       "Просмотры",
		KeyColumnDate:        "Дата",
		KeyPlay:              "Смотреть",
		KeyPlayAudio:         "Слушать",
		KeyDownloadAudio:     "Скачать аудио",
		KeyDownloadVideo:     "Скачать видео",
		KeyOpenInBrowser:     "Открыть в браузере",
		KeyOpenFolder:        "Открыть папку",
		KeyReveal:            "Показать",
		KeySelectVideo:       "Выберите видео.",
		KeyAlreadyInQueue:    "Уже в очереди",
		KeyDownloadCompleted: "Загрузка завершена",

		KeySearching:            "Поиск...",
		KeyAddedFormat:          "Добавлено: %d",
		KeyStopping:             "Остановка...",
		KeySearchStopped:        "Поиск остановлен.",
		KeyNoVideosFound:        "Видео не найдены.",
		KeySearchFinishedFormat: "Поиск завершён. Найдено: %d",
		KeyTimeoutFormat:        "Поиск остановлен по таймауту (%d сек).",
		KeyErrorFormat:          "Ошибка: %s",
		KeyStopErrorFormat:      "Ошибка остановки: %s",

		KeyDownloadStartedFormat: "Скачивание: %s",
		KeyDownloadedFormat:      "Скачано: %s",
		KeyDownloadFailedFormat:  "Не удалось скачать: %s",
		KeyPlayingFormat:         "Воспроизведение: %s",
		KeyPlaybackErrorFormat:   "Ошибка воспроизведения: %s",
		KeyBrowserErrorFormat:    "Не удалось открыть браузер: %s",
		KeyFolderErrorFormat:     "Не удалось открыть папку: %s",
		KeyPlaylistLoading:       "Загрузка плейлиста...",
		KeyPlaylistLoadedFormat:  "Плейлист: %d видео",

		KeyDownloadDirectory: "Папка загрузки",
		KeyResultCount:       "Результатов на поиск",
		KeyInactivityTimeout: "Таймаут бездействия (сек)",
		KeyYtdlpPath:         "Путь к yt-dlp",
		KeyPlayerPath:        "Путь к плееру",
		KeyDownloadMode:      "Режим загрузки",
		KeyDebugLogging:      "Отладочный журнал",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
	}
}
