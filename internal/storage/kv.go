// Package storage определяет порт key-value хранилища клиентского состояния.
// Это явная замена браузерного localStorage: корзина и кэш продуктов живут
// под теми же ключами, но за инжектируемым интерфейсом, чтобы в тестах и
// одиночных процессах подставлялась in-memory реализация, а в постоянных
// инсталляциях — PostgreSQL.
package storage

import (
	"context"
	"fmt"
)

// KeyValueStore — порт хранилища состояния по ключу.
// Атомарность гарантируется для одного ключа; транзакций между ключами нет.
type KeyValueStore interface {
	// Get возвращает значение и признак наличия ключа.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set перезаписывает значение целиком (last-writer-wins).
	Set(ctx context.Context, key string, value []byte) error
	// Delete удаляет ключ; отсутствие ключа ошибкой не считается.
	Delete(ctx context.Context, key string) error
}

// UserIDKey — ключ с идентификатором текущего пользователя.
// Отсутствие значения — единственный сигнал «не аутентифицирован».
const UserIDKey = "userId"

// CartKey возвращает ключ снапшота корзины пользователя.
func CartKey(userID string) string {
	return fmt.Sprintf("carrinhoProdutos_%s", userID)
}

// ProductKey возвращает ключ кэшированного снапшота продукта.
func ProductKey(id int64) string {
	return fmt.Sprintf("produto_%d", id)
}
