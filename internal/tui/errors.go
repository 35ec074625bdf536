// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/trip-keeper/internal/adapter"
	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/fieldcodec"
	tripkeys "github.com/MKhiriev/trip-keeper/internal/keys"
	"github.com/MKhiriev/trip-keeper/internal/service"
)

// humanizeError turns service and transport errors into messages for the
// status line.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return "Неверный логин или пароль"
	case errors.Is(err, docstore.ErrAlreadyExists):
		return "Такой пользователь уже существует"
	case errors.Is(err, tripkeys.ErrKeyUnavailable), errors.Is(err, fieldcodec.ErrMissingKey):
		return "Ключ поездки ещё не передан вам, попробуйте позже"
	case errors.Is(err, tripkeys.ErrNotMember):
		return "Вы не участник этой поездки"
	case errors.Is(err, service.ErrStopNotSynced):
		return "Остановка ещё не сохранена на сервере"
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Заполните обязательные поля"
	case errors.Is(err, docstore.ErrPermissionDenied):
		return "Нет доступа"
	case errors.Is(err, docstore.ErrNotFound):
		return "Не найдено"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}
