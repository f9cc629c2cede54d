package cie

// CIE 1931 2° color matching functions, 380–730 nm at 10 nm, already
// weighted by the D65 illuminant and scaled so the Y column sums to one.
var cie1931_d65 = [36][3]float64{
	{6.46936115727633e-05, 1.84433541764457e-06, 0.000305024750978023},
	{0.000219415369171578, 6.2054782702308e-06, 0.00103683251144092},
	{0.00112060228414359, 3.10103776744139e-05, 0.00531326877604233},
	{0.00376670730427686, 0.000104750996050908, 0.0179548401495523},
	{0.0118808497572766, 0.000353649345357243, 0.057079004340659},
	{0.0232870228938867, 0.000951495123526191, 0.11365445199637},
	{0.0345602796797156, 0.00228232006613489, 0.173363047597462},
	{0.0372247180152918, 0.00420743392201395, 0.196211466514214},
	{0.0324191842208867, 0.00668896510747318, 0.186087009289904},
	{0.0212337349018611, 0.00988864251316196, 0.139953964010199},
	{0.0104912522835777, 0.015249831581587, 0.0891767523322851},
	{0.00329591973705558, 0.0214188448516808, 0.0478974052884572},
	{0.000507047802540891, 0.0334237633103485, 0.0281463269981882},
	{0.000948697853868474, 0.0513112925264347, 0.0161380645679562},
	{0.00627387448845597, 0.0704038388936896, 0.00775929533717298},
	{0.0168650445840847, 0.0878408968669549, 0.00429625546625385},
	{0.0286903641895679, 0.0942514030194481, 0.00200555920471153},
	{0.0426758762490725, 0.0979591120948518, 0.000861492584272158},
	{0.0562561504260008, 0.094154532672617, 0.000369047917008248},
	{0.0694721289967602, 0.0867831869897857, 0.000191433500712763},
	{0.0830552220141023, 0.078858499565938, 0.000149559313956664},
	{0.0861282432155783, 0.0635282861874625, 9.23132295986905e-05},
	{0.0904683927868683, 0.0537427564004085, 6.81366166724671e-05},
	{0.0850059839999687, 0.0426471274206905, 2.88270841412222e-05},
	{0.0709084366392777, 0.0316181374233466, 1.57675750930075e-05},
	{0.0506301536932269, 0.0208857265390802, 3.94070233244055e-06},
	{0.0354748461653679, 0.0138604556350511, 1.58405207257727e-06},
	{0.0214687454102844, 0.00810284218307029, 0},
	{0.0125167687669176, 0.00463021767605804, 0},
	{0.00680475126078526, 0.002491442109212, 0},
	{0.00346465215790157, 0.00125933475912608, 0},
	{0.00149764708248624, 0.000541660024106255, 0},
	{0.000769719667700118, 0.000277959820700288, 0},
	{0.000407378212832335, 0.000147111734433903, 0},
	{0.000169014616182123, 6.10342686915558e-05, 0},
	{9.52268887534793e-05, 3.43881801451621e-05, 0},
}

// CIE standard illuminant D65, relative spectral power, 380–730 nm at 10 nm,
// normalised to 100 at 560 nm.
var d65_spd = [36]float64{
	49.9755, 54.6482, 82.7549, 91.486, 93.4318, 86.6823,
	104.865, 117.008, 117.812, 114.861, 115.923, 108.811,
	109.354, 107.802, 104.79, 107.689, 104.405, 104.046,
	100, 96.3342, 95.788, 88.6856, 90.0062, 89.5991,
	87.6987, 83.2886, 83.6992, 80.0268, 80.2146, 82.2778,
	78.2842, 69.7213, 71.6091, 74.349, 61.604, 69.8856,
}
