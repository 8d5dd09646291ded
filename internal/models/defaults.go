package models

// DefaultUnits is the initial unit roster seeded into an empty store.
var DefaultUnits = []Unit{
	{ID: "u1", Name: "กนผ.สนผพ.กพ.ทหาร", ShortName: "กนผ.", Username: "user1", Password: "123"},
	{ID: "u2", Name: "กพบท.กพ.ทหาร", ShortName: "กพบท.", Username: "user2", Password: "123"},
	{ID: "u3", Name: "กทด.สนผพ.กพ.ทหาร", ShortName: "กทด.", Username: "user3", Password: "123"},
	{ID: "u4", Name: "กกล.กพ.ทหาร", ShortName: "กกล.", Username: "user4", Password: "123"},
	{ID: "u5", Name: "กพพ.กพ.ทหาร", ShortName: "กพพ.", Username: "user5", Password: "123"},
	{ID: "u6", Name: "กบพ.กพ.ทหาร", ShortName: "กบพ.", Username: "user6", Password: "123"},
	{ID: "u7", Name: "กปค.กพ.ทหาร", ShortName: "กปค.", Username: "user7", Password: "123"},
}

// DefaultProjects is the initial project catalogue seeded into an empty store.
var DefaultProjects = []Project{
	{ID: "p1_1", UnitID: "u1", FiscalYear: DefaultFiscalYear, Name: "การคัดเลือกกำลังพลเข้าเป็นนักเรียนทหารต่างประเทศ (สิงคโปร์ และบรูไน)"},
	{ID: "p1_2", UnitID: "u1", FiscalYear: DefaultFiscalYear, Name: "การคัดเลือกนักเรียนในพื้นที่ 3 จชต. เข้ารับการศึกษาใน รร.ชท.สปท."},
	{ID: "p1_3", UnitID: "u1", FiscalYear: DefaultFiscalYear, Name: "การบรรจุข้าราชการพลเรือนกลาโหม"},
	{ID: "p1_4", UnitID: "u1", FiscalYear: DefaultFiscalYear, Name: "การประเมินความพร้อมด้านกำลังพล"},
	{ID: "p1_5", UnitID: "u1", FiscalYear: DefaultFiscalYear, Name: "การบรรจุทหารอาสาของ บก.ทท."},
	{ID: "p1_6", UnitID: "u1", FiscalYear: DefaultFiscalYear, Name: "การบรรจุกำลังพลสำรองของ บก.ทท. และนำมาปฏิบัติราชการร่วมกับทหารประจำการ"},
	{ID: "p1_7", UnitID: "u1", FiscalYear: DefaultFiscalYear, Name: "โครงการทหารกองเกินเข้ารับราชการทหารกองประจำการโดยวิธีร้องขอ (กรณีพิเศษ) ด้วยระบบออนไลน์ (พลทหารออนไลน์)"},
	{ID: "p1_8", UnitID: "u1", FiscalYear: DefaultFiscalYear, Name: "การปรับลดกำลังพลตามแผนการปรับลด และ การบรรจุกำลังพลตามแผนบรรจุประจำปี"},
	{ID: "p1_9", UnitID: "u1", FiscalYear: DefaultFiscalYear, Name: "สร้างแรงจูงใจและสิทธิประโยชน์ในการสมัครใจเข้ารับราชการทหารกองประจำการ"},
	{ID: "p2_1", UnitID: "u2", FiscalYear: DefaultFiscalYear, Name: "การพัฒนาปรับปรุงการบริหารกำลังพลด้วยระบบสายวิทยาการ สายงาน และ ลชท. ของ บก.ทท. ระยะ 3 ปี (ปีงบประมาณพ.ศ. 2568-2570)"},
	{ID: "p2_2", UnitID: "u2", FiscalYear: DefaultFiscalYear, Name: "การจัดทำมาตรฐานประจำตำแหน่งของ บก.ทท. เพื่อนำมาใช้ในการบริหารจัดการกำลังพล (รวมกำลังพลสำรอง) และข้าราชการพลเรือนกลาโหม"},
	{ID: "p3_1", UnitID: "u3", FiscalYear: DefaultFiscalYear, Name: "การบริหารจัดการกำลังพลด้วยเทคโนโลยีสารสนเทศ"},
	{ID: "p4_1", UnitID: "u4", FiscalYear: DefaultFiscalYear, Name: "การพัฒนาระบบสารบรรณอิเล็กทรอนิกส์ บก.ทท. ให้มีประสิทธิภาพมากยิ่งขึ้น"},
	{ID: "p5_1", UnitID: "u5", FiscalYear: DefaultFiscalYear, Name: "การดำเนินงานด้านการศึกษาและฝึกอบรมทางทหาร"},
	{ID: "p5_2", UnitID: "u5", FiscalYear: DefaultFiscalYear, Name: "การดำเนินงานด้านการพัฒนาการจัดการเรียนการสอน"},
	{ID: "p5_3", UnitID: "u5", FiscalYear: DefaultFiscalYear, Name: "การดำเนินงานด้านการบริหารจัดการและการจัดระบบงาน"},
	{ID: "p5_4", UnitID: "u5", FiscalYear: DefaultFiscalYear, Name: "การดำเนินงานด้านการพัฒนาครู อาจารย์ และข้าราชการทหารที่ทำหน้าที่สอน"},
	{ID: "p6_1", UnitID: "u6", FiscalYear: DefaultFiscalYear, Name: "การมอบทุนการศึกษาให้กับบุตรของกำลังพล บก.ทท."},
	{ID: "p6_2", UnitID: "u6", FiscalYear: DefaultFiscalYear, Name: "การดูแลช่วยเหลือครอบครัวกำลังพลที่มีความต้องการพิเศษ"},
	{ID: "p6_3", UnitID: "u6", FiscalYear: DefaultFiscalYear, Name: "การส่งเสริมให้กำลังพลมีสุขภาพกายและสุขภาพจิตที่ดี โดยการตรวจสุขภาพประจำปีให้กับกำลังพล บก.ทท."},
	{ID: "p6_4", UnitID: "u6", FiscalYear: DefaultFiscalYear, Name: "การจัดสรรกำลังพลเข้าพักอาศัยในอาคารสวัสดิการ บก.ทท."},
	{ID: "p6_5", UnitID: "u6", FiscalYear: DefaultFiscalYear, Name: "การปรับปรุงภูมิทัศน์ในอาคารสวัสดิการ บก.ทท."},
	{ID: "p6_6", UnitID: "u6", FiscalYear: DefaultFiscalYear, Name: "การตรวจเยี่ยมที่พักอาศัยในอาคารสวัสดิการ บก.ทท."},
	{ID: "p7_1", UnitID: "u7", FiscalYear: DefaultFiscalYear, Name: "การจัดฝึกอบรมระเบียบวินัยให้กับกำลังพล ในส่วนราชการ บก.ทท. ตามค่านิยมหลัก บก.ทท."},
	{ID: "p7_2", UnitID: "u7", FiscalYear: DefaultFiscalYear, Name: "การทบทวนหลักเกณฑ์การคัดเลือกบุคคลดีเด่น มีหลักเกณฑ์คัดเลือกผู้ที่มีจิตสาธารณะและจิตอาสา ยกย่องเป็นบุคคลต้นแบบ (Role Model)"},
	{ID: "p7_3", UnitID: "u7", FiscalYear: DefaultFiscalYear, Name: "การทบทวน ปรับปรุง และจัดทำแผนการป้องกันและปราบปรามการทุจริตคอร์รัปชันใน บก.ทท. โดยนำยุทธศาสตร์ชาติ และ กห. ว่าด้วยการป้องกัน และปราบปรามการทุจริตมาประกอบการพิจารณาจัดทำแผน"},
	{ID: "p7_4", UnitID: "u7", FiscalYear: DefaultFiscalYear, Name: "การจัดกิจกรรมการให้ความรู้แก่กำลังพลที่ปฏิบัติงานมีความเสี่ยงต่อการทุจริตคอร์รัปชัน และประพฤติมิชอบ"},
	{ID: "p7_5", UnitID: "u7", FiscalYear: DefaultFiscalYear, Name: "การลงโทษ/ลงทัณฑ์เป็นไปตามระเบียบ ไม่ละเมิด พ.ร.บ. ป้องกันและปราบปรามการทรมานและการกระทำให้ บุคคลสูญหาย พ.ศ. 2565"},
}
