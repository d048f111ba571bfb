package application

import (
	"hash/fnv"
	"math/rand"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"charity-recommender/recommender/domain"
)

// DailyPicks sorteia um subconjunto do catálogo, estável por dia UTC.
//
// O seed mistura a data (YYYY-MM-DD) com o segredo do servidor: mesma data
// e mesmo segredo produzem sempre a mesma ordem. Misturar o segredo
// dificulta prever a ordem do dia, mas não é garantia criptográfica.
type DailyPicks struct {
	Catalog []domain.Charity
	Secret  string
	// Now é injetável para testes; nil usa time.Now.
	Now func() time.Time

	cache *gocache.Cache
}

// NewDailyPicks cria o seletor com memoização do embaralhamento do dia.
func NewDailyPicks(catalog []domain.Charity, secret string) *DailyPicks {
	return &DailyPicks{
		Catalog: catalog,
		Secret:  secret,
		cache:   gocache.New(24*time.Hour, time.Hour),
	}
}

// Select devolve os primeiros limit itens do embaralhamento do dia.
func (d *DailyPicks) Select(limit int) []domain.Charity {
	if limit <= 0 {
		return []domain.Charity{}
	}
	day := d.now().UTC().Format("2006-01-02")

	pool := d.poolForDay(day)
	if limit > len(pool) {
		limit = len(pool)
	}
	return append([]domain.Charity(nil), pool[:limit]...)
}

// poolForDay memoiza o embaralhamento por data; o cache é só otimização,
// o resultado é determinístico de qualquer forma.
func (d *DailyPicks) poolForDay(day string) []domain.Charity {
	if d.cache != nil {
		if cached, ok := d.cache.Get(day); ok {
			return cached.([]domain.Charity)
		}
	}

	pool := d.shuffle(day)
	if d.cache != nil {
		d.cache.Set(day, pool, gocache.DefaultExpiration)
	}
	return pool
}

func (d *DailyPicks) shuffle(day string) []domain.Charity {
	h := fnv.New64a()
	h.Write([]byte(day + d.Secret))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	pool := append([]domain.Charity(nil), d.Catalog...)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool
}

func (d *DailyPicks) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
