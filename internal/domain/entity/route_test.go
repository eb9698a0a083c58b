package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCityName_KnownCode(t *testing.T) {
	assert.Equal(t, "杭州", CityName("hgh"))
	assert.Equal(t, "奥克兰", CityName("AKL"))
}

func TestCityName_UnknownCodeUppercased(t *testing.T) {
	assert.Equal(t, "XYZ", CityName("xyz"))
}

func TestFlightRecord_IsValid(t *testing.T) {
	assert.True(t, (&FlightRecord{Price: "3200"}).IsValid())
	assert.True(t, (&FlightRecord{FlightNumber: "MU779"}).IsValid())
	assert.False(t, (&FlightRecord{Airline: "东方航空"}).IsValid())
}
