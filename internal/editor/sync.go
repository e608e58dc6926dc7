package editor

import (
	"context"
	"fmt"

	"crudgen/internal/schema"
)

// syncPreview отправляет текущую схему на предпросмотр. Без force ничего не делает,
// если модель не менялась. Пустая схема даёт заглушки без обращения к сервису.
func (e *Editor) syncPreview(ctx context.Context, force bool) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if !e.dirty && !force {
		e.mu.Unlock()
		return nil
	}
	e.dirty = false

	doc := schema.ToWire(e.entities)
	// номер выдаётся и для заглушки: запоздавший ответ не должен её перетереть
	e.issued++
	seq := e.issued

	if doc.IsEmpty() {
		e.preview.Files = PlaceholderFiles()
		e.preview.Revision = seq
		e.notifyLocked()
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	files, err := e.svc.Preview(ctx, doc)

	e.mu.Lock()
	defer e.mu.Unlock()

	lg := e.log.WithField("seq", seq)
	if err != nil {
		lg.WithError(err).Warn("preview failed, keeping previous content")
		return err
	}
	if seq != e.issued || e.closed {
		lg.WithField("latest", e.issued).Debug("stale preview response discarded")
		return nil
	}

	e.preview.Files = mergeFiles(e.preview.Files, files)
	e.preview.Revision = seq
	if _, ok := files[e.preview.Active]; !ok {
		e.preview.Active = FileModels
	}
	lg.WithField("files", len(files)).Debug("preview applied")
	e.notifyLocked()
	return nil
}

// RefreshPreview снимает отложенный вызов и синхронизирует предпросмотр сразу.
func (e *Editor) RefreshPreview(ctx context.Context) (Preview, error) {
	e.debounce.Cancel()
	if err := e.syncPreview(ctx, true); err != nil {
		return e.Preview(), err
	}
	return e.Preview(), nil
}

// Preview: снапшот предпросмотра
func (e *Editor) Preview() Preview {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.previewLocked()
}

func (e *Editor) previewLocked() Preview {
	p := e.preview.clone()
	p.Pending = e.dirty
	return p
}

// SelectTab переключает активный файл предпросмотра.
func (e *Editor) SelectTab(name string) (Preview, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.preview.Files[name]; !ok {
		return Preview{}, fmt.Errorf("%w %q", ErrUnknownTab, name)
	}
	e.preview.Active = name
	return e.previewLocked(), nil
}

// Subscribe возвращает канал с последним применённым предпросмотром.
// Медленный читатель теряет промежуточные состояния, но всегда видит последнее.
func (e *Editor) Subscribe() (<-chan Preview, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan Preview, 1)
	if e.closed {
		close(ch)
		return ch, func() {}
	}
	id := e.nextWatch
	e.nextWatch++
	e.watchers[id] = ch

	return ch, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if c, ok := e.watchers[id]; ok {
			close(c)
			delete(e.watchers, id)
		}
	}
}

func (e *Editor) notifyLocked() {
	if len(e.watchers) == 0 {
		return
	}
	p := e.previewLocked()
	for _, ch := range e.watchers {
		select {
		case ch <- p:
		default:
			// выкидываем устаревшее значение
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- p:
			default:
			}
		}
	}
}
