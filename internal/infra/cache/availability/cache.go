package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	keyPrefix  = "availability:"
	genPrefix  = "availability-gen:"
	epochKey   = "availability-epoch"
	fieldAll   = "all"
	versionTTL = 24 * time.Hour
)

// setIfVersion пишет поле, только если с момента чтения версии не было Invalidate/Flush
// KEYS: hash даты, эпоха, поколение даты; ARGV: версия, поле, значение, ttl в секундах
var setIfVersion = redis.NewScript(`
local epoch = redis.call('GET', KEYS[2]) or '0'
local gen = redis.call('GET', KEYS[3]) or '0'
if epoch .. '.' .. gen ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[2], ARGV[3])
redis.call('EXPIRE', KEYS[1], ARGV[4])
return 1
`)

// cachedSlot формат слота в Redis
type cachedSlot struct {
	StartTime string `json:"start_time"`
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
}

// Cache кеш доступности слотов по дате
// Одна дата - один hash availability:<date>, поле room:<id> либо all
// Версия даты = эпоха (Flush) + поколение даты (Invalidate); Set со старой версией игнорируется
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создает кеш поверх клиента Redis
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает закешированные слоты; false, если значения нет
func (c *Cache) Get(ctx context.Context, date time.Time, roomID *int64) ([]domain.AvailableSlot, bool, error) {
	raw, err := c.client.HGet(ctx, Key(date), Field(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - hget %s: %v", ErrCache, Key(date), err)
	}

	slots, err := decode(raw)
	if err != nil {
		return nil, false, err
	}

	return slots, true, nil
}

// Version возвращает текущую версию даты; читается до расчета доступности
func (c *Cache) Version(ctx context.Context, date time.Time) (string, error) {
	values, err := c.client.MGet(ctx, epochKey, genKey(date)).Result()
	if err != nil {
		return "", fmt.Errorf("%w: Version - mget %s: %v", ErrCache, genKey(date), err)
	}
	return counter(values, 0) + "." + counter(values, 1), nil
}

// Set сохраняет слоты и продлевает TTL ключа даты
// Если после чтения version дату инвалидировали, запись пропускается (false)
func (c *Cache) Set(ctx context.Context, date time.Time, roomID *int64, version string, slots []domain.AvailableSlot) (bool, error) {
	payload, err := encode(slots)
	if err != nil {
		return false, err
	}

	key := Key(date)
	stored, err := setIfVersion.Run(ctx, c.client,
		[]string{key, epochKey, genKey(date)},
		version, Field(roomID), payload, int64(c.ttl/time.Second),
	).Int()
	if err != nil {
		return false, fmt.Errorf("%w: Set - %s: %v", ErrCache, key, err)
	}

	return stored == 1, nil
}

// Invalidate удаляет доступность всей даты и сдвигает её поколение
func (c *Cache) Invalidate(ctx context.Context, date time.Time) error {
	key := Key(date)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.Incr(ctx, genKey(date))
		pipe.Expire(ctx, genKey(date), versionTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Invalidate - %s: %v", ErrCache, key, err)
	}
	return nil
}

// Flush удаляет доступность всех дат (при изменении часов работы или комнат)
func (c *Cache) Flush(ctx context.Context) error {
	if err := c.client.Incr(ctx, epochKey).Err(); err != nil {
		return fmt.Errorf("%w: Flush - incr epoch: %v", ErrCache, err)
	}

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()

	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: Flush - scan: %v", ErrCache, err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: Flush - del %d keys: %v", ErrCache, len(keys), err)
	}

	return nil
}

// Key ключ hash для даты
func Key(date time.Time) string {
	return keyPrefix + date.Format(domain.DateFormat)
}

// Field поле hash для комнаты или агрегированного режима
func Field(roomID *int64) string {
	if roomID == nil {
		return fieldAll
	}
	return "room:" + strconv.FormatInt(*roomID, 10)
}

func genKey(date time.Time) string {
	return genPrefix + date.Format(domain.DateFormat)
}

// counter значение счетчика из MGET; отсутствующий ключ - "0"
func counter(values []interface{}, i int) string {
	if i < len(values) {
		if v, ok := values[i].(string); ok && v != "" {
			return v
		}
	}
	return "0"
}

func encode(slots []domain.AvailableSlot) ([]byte, error) {
	cached := make([]cachedSlot, len(slots))
	for i, s := range slots {
		cached[i] = cachedSlot{
			StartTime: s.StartTime.String(),
			Remaining: s.RemainingCapacity,
			Total:     s.TotalCapacity,
		}
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrCache, err)
	}
	return payload, nil
}

func decode(raw []byte) ([]domain.AvailableSlot, error) {
	var cached []cachedSlot
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	slots := make([]domain.AvailableSlot, len(cached))
	for i, s := range cached {
		slots[i] = domain.AvailableSlot{
			StartTime:         types.TimeString(s.StartTime),
			RemainingCapacity: s.Remaining,
			TotalCapacity:     s.Total,
		}
	}
	return slots, nil
}
