package esfaker

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// TimeFormat is the layout used by the Now and DateRange generators.
const TimeFormat = "2006-01-02T15:04:05-0700"

const (
	defaultDateRangeDays = 1
	maxDateRangeDays     = 100_000 // about 273 years
	defaultTrueRatio     = 128
	maxTrueRatio         = 255
	hashLength           = 16
	alphanumerics        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var now = time.Now

var (
	freeEmailProviders    = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "proton.me"}
	safeEmailDomains      = []string{"example.com", "example.org", "example.net"}
	cityPrefixes          = []string{"North", "East", "West", "South", "New", "Lake", "Port", "Fort"}
	citySuffixes          = []string{"town", "ton", "land", "ville", "berg", "burgh", "borough", "bury", "view", "port", "mouth", "stad", "furt", "chester", "haven", "side", "shire"}
	secondaryAddressTypes = []string{"Apt.", "Suite"}
	industries            = []string{"Accounting", "Airlines", "Banking", "Biotechnology", "Computer Software", "Construction", "Consumer Goods", "Education", "Financial Services", "Food & Beverages", "Health Care", "Insurance", "Logistics", "Media", "Oil & Energy", "Real Estate", "Retail", "Telecommunications"}
)

// DefaultRegistry returns a Registry holding every built-in generator.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range builtins(gofakeit.New(0)) {
		if err := r.Register(b.name, b.gen); err != nil {
			panic(err)
		}
	}
	return r
}

type builtin struct {
	name string
	gen  Generator
}

func str(fn func() string) Generator {
	return GeneratorFunc(func(Args) Value { return String(fn()) })
}

func builtins(f *gofakeit.Faker) []builtin {
	lower := func(fn func() string) func() string {
		return func() string { return strings.ToLower(fn()) }
	}
	fileName := func() string { return lower(f.Noun)() + "." + f.FileExtension() }
	dirPath := func() string {
		parts := make([]string, 1+rand.IntN(3))
		for i := range parts {
			parts[i] = lower(f.Noun)()
		}
		return "/" + strings.Join(parts, "/")
	}
	coords := func(fn func() float64) func() string {
		return func() string { return strconv.FormatFloat(fn(), 'f', 6, 64) }
	}

	return []builtin{
		{"DateRange", GeneratorFunc(dateRange)},
		{"Boolean", GeneratorFunc(boolean)},
		{"Now", str(func() string { return now().UTC().Format(TimeFormat) })},
		{"Hash", str(hash)},
		{"UUID", str(uuid.NewString)},
		{"Number", GeneratorFunc(number)},

		// Numbers
		{"Digit", str(f.Digit)},

		// Internet
		{"Username", str(f.Username)},
		{"DomainSuffix", str(f.DomainSuffix)},
		{"DomainName", str(f.DomainName)},
		{"IPv4", str(f.IPv4Address)},
		{"IPv6", str(f.IPv6Address)},
		{"IP", str(func() string {
			if rand.IntN(2) == 0 {
				return f.IPv4Address()
			}
			return f.IPv6Address()
		})},
		{"MACAddress", str(f.MacAddress)},
		{"FreeEmail", str(func() string { return lower(f.Username)() + "@" + f.RandomString(freeEmailProviders) })},
		{"SafeEmail", str(func() string { return lower(f.Username)() + "@" + f.RandomString(safeEmailDomains) })},
		{"FreeEmailProvider", str(func() string { return f.RandomString(freeEmailProviders) })},
		{"URL", str(f.URL)},
		{"UserAgent", str(f.UserAgent)},

		// Lorem ipsum
		{"Word", str(f.LoremIpsumWord)},

		// Name
		{"FirstName", str(f.FirstName)},
		{"LastName", str(f.LastName)},
		{"Title", str(f.NamePrefix)},
		{"Suffix", str(f.NameSuffix)},
		{"Name", str(f.Name)},
		{"NameWithTitle", str(func() string { return f.NamePrefix() + " " + f.Name() })},

		// Filesystem
		{"FilePath", str(func() string { return dirPath() + "/" + fileName() })},
		{"FileName", str(fileName)},
		{"FileExtension", str(f.FileExtension)},
		{"DirPath", str(dirPath)},

		// Company
		{"CompanySuffix", str(f.CompanySuffix)},
		{"CompanyName", str(f.Company)},
		{"Buzzword", str(f.BuzzWord)},
		{"BuzzwordMiddle", str(f.JobDescriptor)},
		{"BuzzwordTail", str(f.JobLevel)},
		{"CatchPhase", str(func() string { return f.BuzzWord() + " " + lower(f.JobDescriptor)() + " " + lower(f.Noun)() })},
		{"BsVerb", str(f.Verb)},
		{"BsAdj", str(f.Adjective)},
		{"BsNoun", str(f.Noun)},
		{"Bs", str(f.BS)},
		{"Profession", str(f.JobTitle)},
		{"Industry", str(func() string { return f.RandomString(industries) })},

		// Address
		{"CityPrefix", str(func() string { return f.RandomString(cityPrefixes) })},
		{"CitySuffix", str(func() string { return f.RandomString(citySuffixes) })},
		{"CityName", str(f.City)},
		{"CountryName", str(f.Country)},
		{"CountryCode", str(f.CountryAbr)},
		{"StreetSuffix", str(f.StreetSuffix)},
		{"StreetName", str(f.StreetName)},
		{"TimeZone", str(f.TimeZoneRegion)},
		{"StateName", str(f.State)},
		{"StateAbbr", str(f.StateAbr)},
		{"SecondaryAddressType", str(func() string { return f.RandomString(secondaryAddressTypes) })},
		{"SecondaryAddress", str(func() string {
			return f.RandomString(secondaryAddressTypes) + " " + strconv.Itoa(100+rand.IntN(900))
		})},
		{"ZipCode", str(f.Zip)},
		{"PostCode", str(f.Zip)},
		{"BuildingNumber", str(f.StreetNumber)},
		{"Latitude", str(coords(f.Latitude))},
		{"Longitude", str(coords(f.Longitude))},
	}
}

// dateRange returns a timestamp between now and args[0] days ago.
// The window is capped at maxDateRangeDays.
func dateRange(args Args) Value {
	days := args.Int(0, defaultDateRangeDays)
	if days < 1 {
		days = defaultDateRangeDays
	}
	days = min(days, maxDateRangeDays)
	offset := int(rand.Int64N(days))
	return String(now().UTC().AddDate(0, 0, -offset).Format(TimeFormat))
}

// boolean returns true with a probability of args[0]/255.
func boolean(args Args) Value {
	ratio := args.Int(0, defaultTrueRatio)
	ratio = min(max(ratio, 0), maxTrueRatio)
	return Bool(rand.Int64N(maxTrueRatio) < ratio)
}

// number returns an integer in [args[0], args[1]]; bounds default to 0 and 100.
func number(args Args) Value {
	lo, hi := args.Int(0, 0), args.Int(1, 100)
	if hi < lo {
		lo, hi = hi, lo
	}
	span := uint64(hi) - uint64(lo) + 1
	if span == 0 {
		// [MinInt64, MaxInt64]
		return Int(int64(rand.Uint64()))
	}
	return Int(lo + int64(rand.Uint64N(span)))
}

func hash() string {
	b := make([]byte, hashLength)
	for i := range b {
		b[i] = alphanumerics[rand.IntN(len(alphanumerics))]
	}
	return string(b)
}
