package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyConvert           = "convert"
	KeyStop              = "stop"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyVoiceLanguage     = "voice_language"
	KeySpeed             = "speed"
	KeyPlayAfter         = "play_after"
	KeyOutputDirectory   = "output_directory"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyPDFFile           = "pdf_file"
	KeyTranscript        = "transcript"
	KeyPleaseLoadPDF     = "please_load_pdf"
	KeyLoadingPDF        = "loading_pdf"
	KeyTranscriptReady   = "transcript_ready"
	KeyConversionStarted = "conversion_started"
	KeyConversionDone    = "conversion_done"
	KeyStopping          = "stopping"
	KeySettingsSaved     = "settings_saved"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyFFmpegMissing     = "ffmpeg_missing"
	KeyStatusReady       = "status_ready"
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

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
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
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "PDF Audiobook",
		KeyConvert:           "Convert to Audiobook",
		KeyStop:              "Stop",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyVoiceLanguage:     "Voice Language",
		KeySpeed:             "Speed",
		KeyPlayAfter:         "Play after conversion",
		KeyOutputDirectory:   "Output Directory",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyPDFFile:           "PDF File",
		KeyTranscript:        "Text Content",
		KeyPleaseLoadPDF:     "Please load a PDF or enter text first",
		KeyLoadingPDF:        "Extracting text from PDF...",
		KeyTranscriptReady:   "Text ready - edit it if needed, then convert",
		KeyConversionStarted: "Conversion started",
		KeyConversionDone:    "Audiobook saved",
		KeyStopping:          "Stopping conversion...",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyErrorOpeningFile:  "Error opening file",
		KeyFFmpegMissing:     "Warning: ffmpeg not found - audio processing will not work",
		KeyStatusReady:       "Ready",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "PDF Аудиокнига",
		KeyConvert:           "Преобразовать в аудиокнигу",
		KeyStop:              "Стоп",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyVoiceLanguage:     "Язык озвучки",
		KeySpeed:             "Скорость",
		KeyPlayAfter:         "Воспроизвести после конвертации",
		KeyOutputDirectory:   "Папка вывода",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyPDFFile:           "PDF файл",
		KeyTranscript:        "Текст",
		KeyPleaseLoadPDF:     "Сначала загрузите PDF или введите текст",
		KeyLoadingPDF:        "Извлечение текста из PDF...",
		KeyTranscriptReady:   "Текст готов - отредактируйте при необходимости",
		KeyConversionStarted: "Конвертация начата",
		KeyConversionDone:    "Аудиокнига сохранена",
		KeyStopping:          "Остановка конвертации...",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyFFmpegMissing:     "Внимание: ffmpeg не найден - обработка аудио не будет работать",
		KeyStatusReady:       "Готово",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "PDF Audiolivro",
		KeyConvert:           "Converter em Audiolivro",
		KeyStop:              "Parar",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyVoiceLanguage:     "Idioma da Voz",
		KeySpeed:             "Velocidade",
		KeyPlayAfter:         "Reproduzir após conversão",
		KeyOutputDirectory:   "Diretório de Saída",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyPDFFile:           "Arquivo PDF",
		KeyTranscript:        "Conteúdo do Texto",
		KeyPleaseLoadPDF:     "Carregue um PDF ou digite um texto primeiro",
		KeyLoadingPDF:        "Extraindo texto do PDF...",
		KeyTranscriptReady:   "Texto pronto - edite se necessário e converta",
		KeyConversionStarted: "Conversão iniciada",
		KeyConversionDone:    "Audiolivro salvo",
		KeyStopping:          "Parando conversão...",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyFFmpegMissing:     "Aviso: ffmpeg não encontrado - o processamento de áudio não funcionará",
		KeyStatusReady:       "Pronto",
	}
}
