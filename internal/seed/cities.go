package seed

import "cityapp-admin/internal/model"

// OfficialCities is the fixed list of cities the application accepts as
// official. Codes are IBGE municipality codes.
var OfficialCities = []model.City{
	{Name: "Jundiaí", State: "SP", IBGECode: "3525904"},
	{Name: "Cabreúva", State: "SP", IBGECode: "3508405"},
	{Name: "Campo Limpo Paulista", State: "SP", IBGECode: "3509601"},
	{Name: "Itatiba", State: "SP", IBGECode: "3523404"},
	{Name: "Itupeva", State: "SP", IBGECode: "3524006"},
	{Name: "Jarinu", State: "SP", IBGECode: "3525003"},
	{Name: "Louveira", State: "SP", IBGECode: "3527306"},
	{Name: "Várzea Paulista", State: "SP", IBGECode: "3556503"},
	{Name: "Vinhedo", State: "SP", IBGECode: "3556701"},
}
