package main

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Snowflake ID de 64 bits:
// 1 bit de sinal (0) | 41 bits de timestamp em ms | 5 bits datacenter |
// 5 bits worker | 12 bits de sequência por milissegundo
const (
	snowflakeEpoch = int64(1757235720000) // 2025-09-07 17:02:00 UTC+8, em ms

	workerIDBits     = 5
	datacenterIDBits = 5
	sequenceBits     = 12

	maxWorkerID     = -1 ^ (-1 << workerIDBits)
	maxDatacenterID = -1 ^ (-1 << datacenterIDBits)
	sequenceMask    = -1 ^ (-1 << sequenceBits)

	workerIDShift      = sequenceBits
	datacenterIDShift  = sequenceBits + workerIDBits
	timestampLeftShift = sequenceBits + workerIDBits + datacenterIDBits
)

// SnowflakeGenerator gera IDs únicos e crescentes sem coordenador central.
// Uma instância por par (datacenterID, workerID); o mutex serializa a
// leitura do relógio e a composição do ID.
type SnowflakeGenerator struct {
	mu           sync.Mutex
	datacenterID int64
	workerID     int64
	sequence     int64
	lastTime     int64

	nowMillis func() int64
}

// NewSnowflakeGenerator valida os IDs de instância e cria o gerador.
// IDs fora de [0,31] são erro de configuração, não de runtime.
func NewSnowflakeGenerator(datacenterID, workerID int64) (*SnowflakeGenerator, error) {
	if datacenterID < 0 || datacenterID > maxDatacenterID {
		return nil, fmt.Errorf("datacenter id must be between 0 and %d, got %d", maxDatacenterID, datacenterID)
	}
	if workerID < 0 || workerID > maxWorkerID {
		return nil, fmt.Errorf("worker id must be between 0 and %d, got %d", maxWorkerID, workerID)
	}

	return &SnowflakeGenerator{
		datacenterID: datacenterID,
		workerID:     workerID,
		lastTime:     -1,
		nowMillis: func() int64 {
			return time.Now().UnixMilli()
		},
	}, nil
}

// NextID gera o próximo ID. Seguro para uso concorrente.
func (g *SnowflakeGenerator) NextID() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.nowMillis()

	// Relógio andou para trás: recusar em vez de reutilizar tempo
	if now < g.lastTime {
		return 0, fmt.Errorf("refusing to generate id for %d ms: %w", g.lastTime-now, ErrClockRegression)
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) & sequenceMask
		// Sequência estourou dentro do milissegundo: espera o próximo
		if g.sequence == 0 {
			now = g.tilNextMillis(g.lastTime)
		}
	} else {
		g.sequence = 0
	}

	g.lastTime = now

	id := ((now - snowflakeEpoch) << timestampLeftShift) |
		(g.datacenterID << datacenterIDShift) |
		(g.workerID << workerIDShift) |
		g.sequence

	return id, nil
}

// NextOrderNo gera um número de pedido legível: timestamp + sufixo do snowflake
func (g *SnowflakeGenerator) NextOrderNo() (string, error) {
	id, err := g.NextID()
	if err != nil {
		return "", err
	}

	suffix := strconv.FormatInt(id, 10)
	if len(suffix) > 10 {
		suffix = suffix[10:]
	}

	return time.Now().Format("20060102150405") + suffix, nil
}

// tilNextMillis bloqueia até o relógio avançar além de lastTime
func (g *SnowflakeGenerator) tilNextMillis(lastTime int64) int64 {
	now := g.nowMillis()
	for now <= lastTime {
		now = g.nowMillis()
	}
	return now
}
