package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"zayna_back_end/internal/database"
)

const (
	ProductsKey = "catalog:products"
	CitiesKey   = "catalog:cities"

	CatalogCacheTTL = 10 * time.Minute
)

// GetJSON tente de lire une valeur en cache. Retourne false si Redis est
// absent, la clé manquante ou la valeur illisible.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if database.Redis == nil {
		return false
	}
	data, err := database.Redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(data), dest) == nil
}

// SetJSON écrit une valeur en cache avec le TTL catalogue.
func SetJSON(ctx context.Context, key string, value any) {
	if database.Redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := database.Redis.Set(ctx, key, data, CatalogCacheTTL).Err(); err != nil {
		log.Println("⚠️  Erreur écriture cache:", err)
	}
}

// Invalidate supprime des clés après une mutation admin du catalogue.
func Invalidate(ctx context.Context, keys ...string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, keys...)
}
