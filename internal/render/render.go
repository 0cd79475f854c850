// Package render раскладывает модель документа по страницам и выводит PDF.
//
// Рендер идет в два этапа: сначала все страницы строятся в памяти как списки
// команд рисования, затем проходы отделки дописывают легенду и "Page i of N"
// (им нужно итоговое число страниц), и только после этого документ пишется в приемник.
package render

import (
	"context"

	"github.com/shenikar/incident_reporter/internal/docmodel"
	reporterrors "github.com/shenikar/incident_reporter/internal/errors"
)

// Result - итог рендера
type Result struct {
	PageCount              int   `json:"pageCount"`
	Bytes                  int64 `json:"bytes"`
	SignatureImagesOmitted int   `json:"signatureImagesOmitted"`
	AttachmentsNotEmbedded int   `json:"attachmentsNotEmbedded"`
	// UnsupportedCharacters - символы, для которых во встроенном шрифте нет глифа;
	// в документе они заменены на ReplacementRune
	UnsupportedCharacters  int   `json:"unsupportedCharacters"`
}

// Render раскладывает doc и пишет PDF в sink. Sink закрывается (или отбрасывается,
// если умеет) в любом случае. Ошибки записи и закрытия, включая отмену ctx,
// возвращаются как IOFailure.
func Render(ctx context.Context, doc docmodel.Document, sink Sink, meta Metadata) (*Result, error) {
	if meta.Title == "" {
		meta.Title = doc.Title
	}
	if meta.Subject == "" {
		meta.Subject = doc.ReportKind + " " + doc.ReferenceCode
	}

	out, err := newPDFDocument(meta)
	if err != nil {
		discard(sink)
		return nil, reporterrors.Wrap(err, reporterrors.CategoryInternal, "could not load report font")
	}
	r := NewRenderer(DefaultLayout(), out)
	pages, err := r.Paginate(doc)
	if err != nil {
		discard(sink)
		return nil, err
	}
	if err := out.draw(pages); err != nil {
		discard(sink)
		return nil, reporterrors.Wrap(err, reporterrors.CategoryLayout, "could not draw pages")
	}

	w := &contextWriter{ctx: ctx, w: sink}
	if err := out.output(w); err != nil {
		discard(sink)
		return nil, reporterrors.IOFailure("write", err)
	}
	if err := ctx.Err(); err != nil {
		discard(sink)
		return nil, reporterrors.IOFailure("write", err)
	}
	if err := sink.Close(); err != nil {
		return nil, reporterrors.IOFailure("close", err)
	}

	stats := r.Stats()
	return &Result{
		PageCount:              len(pages),
		Bytes:                  w.n,
		SignatureImagesOmitted: stats.SignatureImagesOmitted,
		AttachmentsNotEmbedded: stats.AttachmentsNotEmbedded,
		UnsupportedCharacters:  out.replaced,
	}, nil
}

func discard(sink Sink) {
	if a, ok := sink.(aborter); ok {
		_ = a.Abort()
		return
	}
	_ = sink.Close()
}
