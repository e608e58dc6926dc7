package editor

import (
	"context"
	"strings"

	"crudgen/internal/artifact"
	"crudgen/internal/schema"

	"github.com/apex/log"
)

// ArchiveName: имя архива проекта
const ArchiveName = "fastapi_project.zip"

// GenerateFromText выводит схему из описания и целиком заменяет ею коллекцию.
// При ошибке коллекция не меняется, а ActionError несёт сообщение сервиса (или общее).
func (e *Editor) GenerateFromText(ctx context.Context, text string) ([]schema.Entity, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyDescription
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	if e.generating {
		e.mu.Unlock()
		return nil, ErrBusy
	}
	e.generating = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.generating = false
		e.mu.Unlock()
	}()

	doc, err := e.svc.ParseText(ctx, text)
	if err != nil {
		e.log.WithError(err).Warn("schema generation failed")
		return nil, actionError("generate from text", MsgGenerateFailed, err)
	}
	ents := schema.Normalize(doc, e.ids)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.entities = ents
	e.changedLocked()
	e.log.WithField("entities", len(ents)).Info("schema generated from text")
	return e.cloneLocked(), nil
}

// Generating: идёт ли генерация по тексту
func (e *Editor) Generating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generating
}

// Download собирает проект на сервисе и отдаёт архив в store.
// Пустая коллекция: ErrEmptySchema, запрос не отправляется.
func (e *Editor) Download(ctx context.Context, store artifact.Store) (artifact.Object, error) {
	e.mu.Lock()
	if len(e.entities) == 0 {
		e.mu.Unlock()
		return artifact.Object{}, ErrEmptySchema
	}
	doc := schema.ToWire(e.entities)
	e.mu.Unlock()

	data, err := e.svc.Generate(ctx, doc)
	if err != nil {
		e.log.WithError(err).Warn("project generation failed")
		return artifact.Object{}, actionError("download", MsgDownloadFailed, err)
	}

	obj, err := store.Save(ctx, ArchiveName, data)
	if err != nil {
		e.log.WithError(err).Error("saving project archive failed")
		return artifact.Object{}, &ActionError{Action: "download", Message: MsgDownloadFailed, Err: err}
	}
	e.log.WithFields(log.Fields{"location": obj.Location, "size": obj.Size}).Info("project downloaded")
	return obj, nil
}
