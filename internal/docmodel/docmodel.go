// Package docmodel описывает независимую от рендерера модель документа:
// упорядоченный список секций четырех видов. Все значения уже отформатированы
// для отображения, рендерер занимается только раскладкой.
package docmodel

// SectionKind - дискриминатор вида секции
type SectionKind string

const (
	KindLabelValue SectionKind = "label_value"
	KindTable      SectionKind = "table"
	KindAttachment SectionKind = "attachment"
	KindSignature  SectionKind = "signature"
)

// Section - закрытое объединение секций. Реализуется только типами этого пакета.
type Section interface {
	Kind() SectionKind
	Heading() string
	section()
}

// Row - пара "метка: значение"
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type LabelValueSection struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

type TableSection struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// AttachmentItem - вложение в списке; бинарное содержимое в документ не встраивается
type AttachmentItem struct {
	URI     string `json:"uri"`
	Type    string `json:"type"`
	Caption string `json:"caption,omitempty"`
}

type AttachmentSection struct {
	Title       string           `json:"title"`
	Attachments []AttachmentItem `json:"attachments"`
}

// SignatureItem - блок подписи. ImageRef передается как есть, встраивание изображения не реализовано.
type SignatureItem struct {
	Slot     string `json:"slot"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	SignedAt string `json:"signedAt"`
	ImageRef string `json:"imageRef,omitempty"`
}

type SignatureSection struct {
	Title      string          `json:"title"`
	Signatures []SignatureItem `json:"signatures"`
}

func (LabelValueSection) Kind() SectionKind { return KindLabelValue }
func (TableSection) Kind() SectionKind      { return KindTable }
func (AttachmentSection) Kind() SectionKind { return KindAttachment }
func (SignatureSection) Kind() SectionKind  { return KindSignature }

func (s LabelValueSection) Heading() string { return s.Title }
func (s TableSection) Heading() string      { return s.Title }
func (s AttachmentSection) Heading() string { return s.Title }
func (s SignatureSection) Heading() string  { return s.Title }

func (LabelValueSection) section() {}
func (TableSection) section()      {}
func (AttachmentSection) section() {}
func (SignatureSection) section()  {}

// Document - вход рендерера
type Document struct {
	Title         string    `json:"title"`
	ReportKind    string    `json:"reportKind"`
	ReferenceCode string    `json:"referenceCode"`
	GeneratedAt   string    `json:"generatedAt"`
	Sections      []Section `json:"sections"`
}

// Append добавляет секцию, пропуская nil
func (d *Document) Append(s Section) {
	if s == nil {
		return
	}
	d.Sections = append(d.Sections, s)
}
